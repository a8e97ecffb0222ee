// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"mgepcar/internal/models"
)

// ReviewStore handles customer testimonial database operations.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

const reviewColumns = `id, name, social_handle, stars, comment, vehicle,
	purchase_year, photo_url, is_approved, created_at`

func scanReview(row interface{ Scan(...any) error }) (models.Review, error) {
	var r models.Review
	err := row.Scan(
		&r.ID, &r.Name, &r.SocialHandle, &r.Stars, &r.Comment, &r.Vehicle,
		&r.PurchaseYear, &r.PhotoURL, &r.Approved, &r.CreatedAt,
	)
	return r, err
}

// List returns all reviews, newest first. Used by the admin moderation view.
func (s *ReviewStore) List() ([]models.Review, error) {
	return s.list(`SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`)
}

// ListApproved returns only approved reviews, newest first. This is the
// set shown on the public testimonial rail.
func (s *ReviewStore) ListApproved() ([]models.Review, error) {
	return s.list(`SELECT ` + reviewColumns + ` FROM reviews WHERE is_approved ORDER BY created_at DESC`)
}

func (s *ReviewStore) list(query string) ([]models.Review, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var items []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// Create inserts a new review. Reviews always start unapproved; approval
// is a separate admin action.
func (s *ReviewStore) Create(r *models.Review) (*models.Review, error) {
	row := s.db.QueryRow(`
		INSERT INTO reviews (name, social_handle, stars, comment, vehicle, purchase_year, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+reviewColumns,
		r.Name, r.SocialHandle, r.Stars, r.Comment, r.Vehicle, r.PurchaseYear, r.PhotoURL,
	)
	created, err := scanReview(row)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &created, nil
}

// SetApproved toggles a review's visibility on the public site.
func (s *ReviewStore) SetApproved(id uuid.UUID, approved bool) error {
	_, err := s.db.Exec(`UPDATE reviews SET is_approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return fmt.Errorf("set review approved: %w", err)
	}
	return nil
}

// Delete removes a review by ID.
func (s *ReviewStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// CountPending returns the number of reviews awaiting moderation.
func (s *ReviewStore) CountPending() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE NOT is_approved`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending reviews: %w", err)
	}
	return count, nil
}

// ReviewTokenStore manages the single-use tokens that gate review
// submission. A token is created by an admin, handed to a customer as a
// deep link, and deleted the moment a review is accepted with it.
type ReviewTokenStore struct {
	db *sql.DB
}

// NewReviewTokenStore creates a new ReviewTokenStore.
func NewReviewTokenStore(db *sql.DB) *ReviewTokenStore {
	return &ReviewTokenStore{db: db}
}

// Create generates a new random token and stores it.
func (s *ReviewTokenStore) Create() (*models.ReviewToken, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate review token: %w", err)
	}
	token := hex.EncodeToString(buf)

	t := &models.ReviewToken{}
	err := s.db.QueryRow(`
		INSERT INTO review_tokens (token) VALUES ($1)
		RETURNING token, created_at
	`, token).Scan(&t.Token, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create review token: %w", err)
	}
	return t, nil
}

// Find retrieves a token if it is still valid (present and unused).
// Returns nil if not found.
func (s *ReviewTokenStore) Find(token string) (*models.ReviewToken, error) {
	t := &models.ReviewToken{}
	err := s.db.QueryRow(`
		SELECT token, created_at FROM review_tokens WHERE token = $1
	`, token).Scan(&t.Token, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review token: %w", err)
	}
	return t, nil
}

// Consume deletes a token, marking it used. Returns false when the token
// did not exist, so concurrent submissions cannot both succeed with the
// same token.
func (s *ReviewTokenStore) Consume(token string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM review_tokens WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("consume review token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume review token: %w", err)
	}
	return n > 0, nil
}

// List returns all outstanding tokens, newest first.
func (s *ReviewTokenStore) List() ([]models.ReviewToken, error) {
	rows, err := s.db.Query(`SELECT token, created_at FROM review_tokens ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list review tokens: %w", err)
	}
	defer rows.Close()

	var items []models.ReviewToken
	for rows.Next() {
		var t models.ReviewToken
		if err := rows.Scan(&t.Token, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review token: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
