// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package stock keeps an in-memory snapshot of the vehicle catalog. Public
// handlers read from the snapshot instead of hitting PostgreSQL on every
// request; admin mutations trigger a refresh. When the database is
// unreachable or empty the snapshot falls back to a small bundled dataset
// so the storefront never renders an empty showroom.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"mgepcar/internal/models"
)

// Lister is the source the snapshot is refreshed from. Satisfied by
// store.ListingStore.
type Lister interface {
	List(ctx context.Context) ([]models.Listing, error)
}

// Store holds the current catalog snapshot.
//
// Refreshes carry a monotonic sequence number. A refresh that completes
// after a newer refresh has already been applied is discarded, so slow
// fetches can never clobber fresher data.
type Store struct {
	src Lister

	mu       sync.Mutex
	seq      uint64 // last issued refresh sequence
	applied  uint64 // sequence of the snapshot currently held
	listings []models.Listing
	fallback bool // snapshot is the bundled dataset, not DB data
}

// New returns a Store primed with the bundled fallback dataset so reads
// are valid before the first Refresh completes.
func New(src Lister) *Store {
	return &Store{
		src:      src,
		listings: Fallback(),
		fallback: true,
	}
}

// All returns a copy of the current snapshot. The copy is the caller's to
// keep; mutating it never affects the store.
func (s *Store) All() []models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Serving reports whether the snapshot is the bundled fallback dataset
// rather than live database rows. Exposed on the health endpoint.
func (s *Store) Serving() (n int, fallback bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listings), s.fallback
}

// Refresh fetches the catalog from the source and swaps the snapshot.
// A fetch error or an empty result swaps in the fallback dataset instead;
// both outcomes are logged and neither is returned as an error, because
// readers always have a usable snapshot.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	listings, err := s.src.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer refresh already landed; this result is stale.
	if seq <= s.applied {
		slog.Debug("stock refresh discarded as stale", "seq", seq, "applied", s.applied)
		return
	}
	s.applied = seq

	if err != nil {
		slog.Error("stock refresh failed, serving fallback dataset", "error", err)
		s.listings = Fallback()
		s.fallback = true
		return
	}
	if len(listings) == 0 {
		slog.Warn("stock refresh returned no listings, serving fallback dataset")
		s.listings = Fallback()
		s.fallback = true
		return
	}

	// Drop rows that fail validation rather than trusting them downstream.
	kept := listings[:0]
	for _, l := range listings {
		if verr := l.Validate(); verr != nil {
			slog.Warn("stock refresh skipping invalid listing", "id", l.ID, "error", verr)
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		slog.Warn("stock refresh had no valid listings, serving fallback dataset")
		s.listings = Fallback()
		s.fallback = true
		return
	}

	s.listings = kept
	s.fallback = false
	slog.Info("stock snapshot refreshed", "listings", len(kept))
}

// FindBySlug returns the snapshot listing with the given slug, or an error
// when no such listing exists.
func (s *Store) FindBySlug(slug string) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.Slug == slug {
			return l, nil
		}
	}
	return models.Listing{}, fmt.Errorf("stock: no listing with slug %q", slug)
}
