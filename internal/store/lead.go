// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mgepcar/internal/models"
)

// LeadStore handles the three lead inboxes: contact messages, advertise
// (sell-your-car) messages, and per-listing interest messages.
type LeadStore struct {
	db *sql.DB
}

// NewLeadStore creates a new LeadStore with the given database connection.
func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// CreateContact inserts a contact-form message.
func (s *LeadStore) CreateContact(m *models.ContactMessage) (*models.ContactMessage, error) {
	created := &models.ContactMessage{}
	err := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, created_at
	`, m.Name, m.Email, m.Message).Scan(
		&created.ID, &created.Name, &created.Email, &created.Message, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return created, nil
}

// ListContacts returns all contact messages, newest first.
func (s *LeadStore) ListContacts() ([]models.ContactMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, message, created_at
		FROM contact_messages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteContact removes a contact message by ID.
func (s *LeadStore) DeleteContact(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return nil
}

// CreateAdvertise inserts a sell-your-car lead. The caller is expected to
// have run ClearPendencies so the stored pendency list respects the
// has_pendency gate.
func (s *LeadStore) CreateAdvertise(m *models.AdvertiseMessage) (*models.AdvertiseMessage, error) {
	pendencies, err := marshalStrings(m.Pendencies)
	if err != nil {
		return nil, fmt.Errorf("marshal pendencies: %w", err)
	}

	created := &models.AdvertiseMessage{}
	var raw []byte
	err = s.db.QueryRow(`
		INSERT INTO advertise_messages (name, phone, brand, model, year_fab, year_mod,
		                                color, mileage, has_pendency, pendencies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, name, phone, brand, model, year_fab, year_mod,
		          color, mileage, has_pendency, pendencies, created_at
	`, m.Name, m.Phone, m.Brand, m.Model, m.YearFab, m.YearMod,
		m.Color, m.Mileage, m.HasPendency, pendencies,
	).Scan(
		&created.ID, &created.Name, &created.Phone, &created.Brand, &created.Model,
		&created.YearFab, &created.YearMod, &created.Color, &created.Mileage,
		&created.HasPendency, &raw, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create advertise message: %w", err)
	}
	if err := json.Unmarshal(raw, &created.Pendencies); err != nil {
		return nil, fmt.Errorf("unmarshal pendencies: %w", err)
	}
	return created, nil
}

// ListAdvertises returns all sell-your-car leads, newest first.
func (s *LeadStore) ListAdvertises() ([]models.AdvertiseMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, name, phone, brand, model, year_fab, year_mod,
		       color, mileage, has_pendency, pendencies, created_at
		FROM advertise_messages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list advertise messages: %w", err)
	}
	defer rows.Close()

	var items []models.AdvertiseMessage
	for rows.Next() {
		var m models.AdvertiseMessage
		var raw []byte
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Phone, &m.Brand, &m.Model,
			&m.YearFab, &m.YearMod, &m.Color, &m.Mileage,
			&m.HasPendency, &raw, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan advertise message: %w", err)
		}
		if err := json.Unmarshal(raw, &m.Pendencies); err != nil {
			return nil, fmt.Errorf("unmarshal pendencies: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteAdvertise removes a sell-your-car lead by ID.
func (s *LeadStore) DeleteAdvertise(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM advertise_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete advertise message: %w", err)
	}
	return nil
}

// CreateInterest inserts a buyer lead for a specific listing.
func (s *LeadStore) CreateInterest(m *models.ListingInterest) (*models.ListingInterest, error) {
	created := &models.ListingInterest{}
	err := s.db.QueryRow(`
		INSERT INTO listing_interests (listing_id, listing_name, name, email, whatsapp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, listing_id, listing_name, name, email, whatsapp, created_at
	`, m.ListingID, m.ListingName, m.Name, m.Email, m.Whatsapp).Scan(
		&created.ID, &created.ListingID, &created.ListingName,
		&created.Name, &created.Email, &created.Whatsapp, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create listing interest: %w", err)
	}
	return created, nil
}

// ListInterests returns all buyer leads, newest first.
func (s *LeadStore) ListInterests() ([]models.ListingInterest, error) {
	rows, err := s.db.Query(`
		SELECT id, listing_id, listing_name, name, email, whatsapp, created_at
		FROM listing_interests ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list listing interests: %w", err)
	}
	defer rows.Close()

	var items []models.ListingInterest
	for rows.Next() {
		var m models.ListingInterest
		if err := rows.Scan(
			&m.ID, &m.ListingID, &m.ListingName,
			&m.Name, &m.Email, &m.Whatsapp, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan listing interest: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteInterest removes a buyer lead by ID.
func (s *LeadStore) DeleteInterest(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM listing_interests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing interest: %w", err)
	}
	return nil
}

// Counts returns the size of each lead inbox for the admin dashboard.
func (s *LeadStore) Counts() (contacts, advertises, interests int, err error) {
	err = s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM contact_messages),
			(SELECT COUNT(*) FROM advertise_messages),
			(SELECT COUNT(*) FROM listing_interests)
	`).Scan(&contacts, &advertises, &interests)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("count leads: %w", err)
	}
	return contacts, advertises, interests, nil
}
