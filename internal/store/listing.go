// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL access methods for all catalog and
// lead entities. Each store struct wraps a *sql.DB and exposes typed
// query methods.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mgepcar/internal/models"
)

// ListingStore handles all vehicle listing database operations.
//
// The images and features columns are JSONB; marshalling happens here so
// the rest of the application only ever sees []string. The is_featured and
// is_sold columns map to the IsFeatured/IsSold model fields, which in turn
// serialize as isFeatured/isSold on the wire.
type ListingStore struct {
	db *sql.DB
}

// NewListingStore creates a new ListingStore with the given database connection.
func NewListingStore(db *sql.DB) *ListingStore {
	return &ListingStore{db: db}
}

const listingColumns = `id, slug, brand, model, version, year_fab, year_mod,
	price, mileage, transmission, fuel, color, image, images,
	description, features, is_featured, is_sold, created_at, updated_at`

func scanListing(row interface{ Scan(...any) error }) (models.Listing, error) {
	var l models.Listing
	var images, features []byte
	err := row.Scan(
		&l.ID, &l.Slug, &l.Brand, &l.Model, &l.Version, &l.YearFab, &l.YearMod,
		&l.Price, &l.Mileage, &l.Transmission, &l.Fuel, &l.Color, &l.Image, &images,
		&l.Description, &features, &l.IsFeatured, &l.IsSold, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}
	if err := json.Unmarshal(images, &l.Images); err != nil {
		return models.Listing{}, fmt.Errorf("unmarshal images: %w", err)
	}
	if err := json.Unmarshal(features, &l.Features); err != nil {
		return models.Listing{}, fmt.Errorf("unmarshal features: %w", err)
	}
	return l, nil
}

func marshalStrings(ss []string) ([]byte, error) {
	if ss == nil {
		ss = []string{}
	}
	return json.Marshal(ss)
}

// List returns every listing, newest first. Sold vehicles are included;
// filtering them is the catalog layer's job.
func (s *ListingStore) List(ctx context.Context) ([]models.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var items []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// FindByID retrieves a listing by its UUID. Returns nil if not found.
func (s *ListingStore) FindByID(id uuid.UUID) (*models.Listing, error) {
	row := s.db.QueryRow(`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find listing by id: %w", err)
	}
	return &l, nil
}

// FindBySlug retrieves a listing by its URL slug. Returns nil if not found.
func (s *ListingStore) FindBySlug(slug string) (*models.Listing, error) {
	row := s.db.QueryRow(`SELECT `+listingColumns+` FROM listings WHERE slug = $1`, slug)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find listing by slug: %w", err)
	}
	return &l, nil
}

// Create inserts a new listing and returns it with the generated ID and
// timestamps.
func (s *ListingStore) Create(l *models.Listing) (*models.Listing, error) {
	images, err := marshalStrings(l.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}
	features, err := marshalStrings(l.Features)
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO listings (slug, brand, model, version, year_fab, year_mod,
		                      price, mileage, transmission, fuel, color, image,
		                      images, description, features, is_featured, is_sold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+listingColumns,
		l.Slug, l.Brand, l.Model, l.Version, l.YearFab, l.YearMod,
		l.Price, l.Mileage, l.Transmission, l.Fuel, l.Color, l.Image,
		images, l.Description, features, l.IsFeatured, l.IsSold,
	)
	created, err := scanListing(row)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return &created, nil
}

// Update modifies an existing listing.
func (s *ListingStore) Update(l *models.Listing) error {
	images, err := marshalStrings(l.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}
	features, err := marshalStrings(l.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE listings SET
			slug = $1, brand = $2, model = $3, version = $4,
			year_fab = $5, year_mod = $6, price = $7, mileage = $8,
			transmission = $9, fuel = $10, color = $11, image = $12,
			images = $13, description = $14, features = $15,
			is_featured = $16, is_sold = $17, updated_at = NOW()
		WHERE id = $18
	`, l.Slug, l.Brand, l.Model, l.Version,
		l.YearFab, l.YearMod, l.Price, l.Mileage,
		l.Transmission, l.Fuel, l.Color, l.Image,
		images, l.Description, features,
		l.IsFeatured, l.IsSold, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	return nil
}

// Delete removes a listing by ID. Interests referencing it keep their
// denormalized listing name (the FK is ON DELETE SET NULL).
func (s *ListingStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// SlugExists reports whether a slug is already taken by another listing.
// The exclude ID lets updates keep their own slug.
func (s *ListingStore) SlugExists(slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM listings WHERE slug = $1 AND id <> $2)
	`, slug, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

// Count returns total and sold listing counts for the admin dashboard.
func (s *ListingStore) Count() (total, sold int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_sold) FROM listings
	`).Scan(&total, &sold)
	if err != nil {
		return 0, 0, fmt.Errorf("count listings: %w", err)
	}
	return total, sold, nil
}
