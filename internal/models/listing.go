// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transmission is the gearbox type of a vehicle.
type Transmission string

const (
	TransmissionAutomatic Transmission = "Automático"
	TransmissionManual    Transmission = "Manual"
)

// NormalizeTransmission coerces free-form input into one of the two valid
// transmission values. Anything that is not recognizably manual is treated
// as automatic, which matches how the stock was historically entered.
func NormalizeTransmission(s string) Transmission {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual":
		return TransmissionManual
	default:
		return TransmissionAutomatic
	}
}

// Listing represents one vehicle for sale in the catalog.
//
// JSON field names follow the storefront's convention (camelCase flags),
// while the database columns use snake_case (is_featured, is_sold). The
// store layer performs that rename in both directions so neither side
// silently loses the flags.
type Listing struct {
	ID           uuid.UUID    `json:"id"`
	Slug         string       `json:"slug"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Version      string       `json:"version"`
	YearFab      int          `json:"year_fab"`
	YearMod      int          `json:"year_mod"`
	Price        int64        `json:"price"`   // whole BRL
	Mileage      int          `json:"mileage"` // kilometers
	Transmission Transmission `json:"transmission"`
	Fuel         string       `json:"fuel"`
	Color        string       `json:"color"`
	Image        string       `json:"image"`  // primary image URL
	Images       []string     `json:"images"` // additional image URLs
	Description  string       `json:"description"`
	Features     []string     `json:"features"`
	IsFeatured   bool         `json:"isFeatured"`
	IsSold       bool         `json:"isSold"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Validate checks the invariants a listing must satisfy before it enters
// the catalog. Called at the fetch boundary and on admin writes, so bad
// records are rejected there instead of being trusted downstream.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Brand) == "" {
		return fmt.Errorf("listing: brand is required")
	}
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("listing: model is required")
	}
	if l.Price < 0 {
		return fmt.Errorf("listing: price must be non-negative, got %d", l.Price)
	}
	if l.Mileage < 0 {
		return fmt.Errorf("listing: mileage must be non-negative, got %d", l.Mileage)
	}
	return nil
}

// Name returns the display name used in lead payloads and page titles.
func (l *Listing) Name() string {
	return strings.TrimSpace(l.Brand + " " + l.Model)
}

// PrimaryImage returns the best available image URL for cards and previews:
// the primary image, falling back to the first secondary image.
func (l *Listing) PrimaryImage() string {
	if l.Image != "" {
		return l.Image
	}
	if len(l.Images) > 0 {
		return l.Images[0]
	}
	return ""
}
