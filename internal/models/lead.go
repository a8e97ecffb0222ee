// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a general inquiry sent through the contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Pendency values accepted on an advertise-vehicle lead.
const (
	PendencyFine      = "multa"
	PendencyFinancing = "financiamento"
	PendencyOther     = "outro"
)

// AdvertiseMessage is a sell-your-car lead: a customer offering their
// vehicle to the dealership.
//
// HasPendency gates the Pendencies list: when it is false the list must
// be empty, mirroring the form where the checkboxes are disabled and
// cleared once "no pendency" is selected. ClearPendencies enforces this
// server-side regardless of what the client sent.
type AdvertiseMessage struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	YearFab     int       `json:"year_fab"`
	YearMod     int       `json:"year_mod"`
	Color       string    `json:"color"`
	Mileage     int       `json:"mileage"`
	HasPendency bool      `json:"has_pendency"`
	Pendencies  []string  `json:"pendencies"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClearPendencies drops the pendency list when the lead declares no
// documentation pendency, and filters unknown values otherwise.
func (a *AdvertiseMessage) ClearPendencies() {
	if !a.HasPendency {
		a.Pendencies = nil
		return
	}
	known := map[string]bool{PendencyFine: true, PendencyFinancing: true, PendencyOther: true}
	var kept []string
	for _, p := range a.Pendencies {
		if known[p] {
			kept = append(kept, p)
		}
	}
	a.Pendencies = kept
}

// ListingInterest is a buyer lead attached to a specific listing. The
// listing's name is denormalized so the lead survives the listing being
// deleted or renamed.
type ListingInterest struct {
	ID          uuid.UUID  `json:"id"`
	ListingID   *uuid.UUID `json:"listing_id,omitempty"`
	ListingName string     `json:"listing_name"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Whatsapp    string     `json:"whatsapp"`
	CreatedAt   time.Time  `json:"created_at"`
}
