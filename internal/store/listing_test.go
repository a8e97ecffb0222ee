// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"mgepcar/internal/models"
)

func testListing(slug string) *models.Listing {
	return &models.Listing{
		Slug:         slug,
		Brand:        "BMW",
		Model:        "320i",
		Version:      "M Sport",
		YearFab:      2020,
		YearMod:      2021,
		Price:        215_000,
		Mileage:      18_000,
		Transmission: models.TransmissionAutomatic,
		Fuel:         "Flex",
		Color:        "Preto",
		Image:        "https://example.com/320i.jpg",
		Images:       []string{"https://example.com/320i-2.jpg"},
		Description:  "Único dono.",
		Features:     []string{"Teto Solar", "Bancos de Couro"},
		IsFeatured:   true,
	}
}

func TestListingStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	slug := "store-test-bmw-320i-create"
	t.Cleanup(func() { cleanListings(t, db, slug) })

	created, err := s.Create(testListing(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Price != 215_000 {
		t.Errorf("price: got %d, want 215000", created.Price)
	}
	if !created.IsFeatured {
		t.Error("is_featured flag lost on insert")
	}
	if len(created.Features) != 2 {
		t.Errorf("features: got %d, want 2", len(created.Features))
	}
	if len(created.Images) != 1 {
		t.Errorf("images: got %d, want 1", len(created.Images))
	}

	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected listing, got nil")
	}
	if found.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", found.ID, created.ID)
	}

	byID, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Slug != slug {
		t.Errorf("FindByID returned wrong listing: %+v", byID)
	}
}

func TestListingStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	found, err := s.FindBySlug("store-test-no-such-slug")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found != nil {
		t.Error("expected nil for missing slug")
	}

	byID, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID != nil {
		t.Error("expected nil for missing id")
	}
}

func TestListingStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	slug := "store-test-bmw-320i-update"
	t.Cleanup(func() { cleanListings(t, db, slug) })

	created, err := s.Create(testListing(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Price = 199_000
	created.IsSold = true
	created.Features = []string{"Harman Kardon"}
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Price != 199_000 {
		t.Errorf("price after update: got %d, want 199000", found.Price)
	}
	if !found.IsSold {
		t.Error("is_sold flag lost on update")
	}
	if len(found.Features) != 1 || found.Features[0] != "Harman Kardon" {
		t.Errorf("features after update: got %v", found.Features)
	}
}

func TestListingStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	slug := "store-test-bmw-320i-delete"
	t.Cleanup(func() { cleanListings(t, db, slug) })

	created, err := s.Create(testListing(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestListingStoreList(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	slugs := []string{"store-test-list-a", "store-test-list-b"}
	t.Cleanup(func() { cleanListings(t, db, slugs...) })

	for _, slug := range slugs {
		if _, err := s.Create(testListing(slug)); err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
	}

	items, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) < 2 {
		t.Fatalf("List: got %d listings, want at least 2", len(items))
	}
	// Newest first.
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Errorf("List not ordered newest-first at index %d", i)
		}
	}
}

func TestListingStoreSlugExists(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	slug := "store-test-slug-exists"
	t.Cleanup(func() { cleanListings(t, db, slug) })

	created, err := s.Create(testListing(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another listing may not take the slug.
	taken, err := s.SlugExists(slug, uuid.New())
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if !taken {
		t.Error("expected slug to be taken")
	}

	// The owner keeps its own slug.
	taken, err = s.SlugExists(slug, created.ID)
	if err != nil {
		t.Fatalf("SlugExists (own): %v", err)
	}
	if taken {
		t.Error("slug should not conflict with its own listing")
	}
}
