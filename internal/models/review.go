// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review is a customer testimonial about a purchased vehicle. Submitted
// reviews start unapproved and only appear on the public site after an
// admin approves them.
type Review struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SocialHandle string    `json:"social_handle,omitempty"` // e.g. "@ricardo.silva"
	Stars        int       `json:"stars"`                   // 1..5
	Comment      string    `json:"comment"`
	Vehicle      string    `json:"vehicle"` // label of the purchased car, e.g. "BMW 320i"
	PurchaseYear int       `json:"purchase_year"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks review invariants before the record is stored.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("review: name is required")
	}
	if r.Stars < 1 || r.Stars > 5 {
		return fmt.Errorf("review: stars must be between 1 and 5, got %d", r.Stars)
	}
	if strings.TrimSpace(r.Comment) == "" {
		return fmt.Errorf("review: comment is required")
	}
	return nil
}

// ReviewToken is a single-use credential that lets a customer submit a
// review without an account. The token record is deleted when the review
// it gated is accepted.
type ReviewToken struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
