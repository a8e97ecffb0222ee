// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable; the pure-catalog tests run everywhere.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"mgepcar/internal/cache"
	"mgepcar/internal/database"
	"mgepcar/internal/middleware"
	"mgepcar/internal/models"
	"mgepcar/internal/session"
	"mgepcar/internal/stock"
	"mgepcar/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "mgepcar")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "mgepcar")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "api:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Sessions   *session.Store
	Listings   *store.ListingStore
	Reviews    *store.ReviewStore
	Tokens     *store.ReviewTokenStore
	Leads      *store.LeadStore
	MediaStore *store.MediaStore
	UserStore  *store.UserStore
	Stock      *stock.Store
	RespCache  *cache.ResponseCache
	Admin      *Admin
	Auth       *Auth
	LeadsH     *Leads
	Public     *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies wired against the test database and Valkey.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, 1*time.Hour)
	listings := store.NewListingStore(db)
	reviews := store.NewReviewStore(db)
	tokens := store.NewReviewTokenStore(db)
	leads := store.NewLeadStore(db)
	mediaStore := store.NewMediaStore(db)
	userStore := store.NewUserStore(db)
	st := stock.New(listings)
	respCache := cache.NewResponseCache(vk, 1*time.Minute)

	admin := NewAdmin(listings, reviews, tokens, leads, mediaStore, userStore, st, respCache, nil)
	auth := NewAuth(sessions, userStore, "test")
	leadsH := NewLeads(leads, listings, reviews, tokens)
	public := NewPublic(st, reviews, tokens, respCache)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Sessions:   sessions,
		Listings:   listings,
		Reviews:    reviews,
		Tokens:     tokens,
		Leads:      leads,
		MediaStore: mediaStore,
		UserStore:  userStore,
		Stock:      st,
		RespCache:  respCache,
		Admin:      admin,
		Auth:       auth,
		LeadsH:     leadsH,
		Public:     public,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// adminUserID returns the seeded admin's ID.
func adminUserID(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM users WHERE role = 'admin' LIMIT 1").Scan(&id); err != nil {
		t.Fatalf("no admin user in database: %v", err)
	}
	return id
}

// testReview returns a valid review attributed to the given name.
func testReview(name string) models.Review {
	return models.Review{
		Name:         name,
		SocialHandle: "@" + name,
		Stars:        5,
		Comment:      "Great buying experience.",
		Vehicle:      "BMW 320i",
		PurchaseYear: 2024,
	}
}

// testListing returns a valid listing with the given slug.
func testListing(slug string) models.Listing {
	return models.Listing{
		Slug:         slug,
		Brand:        "Fiat",
		Model:        "Pulse",
		Version:      "1.0 Turbo Audace",
		YearFab:      2023,
		YearMod:      2024,
		Price:        112_900,
		Mileage:      18_000,
		Transmission: models.TransmissionAutomatic,
		Fuel:         "Flex",
		Color:        "Vermelho",
		Image:        "https://example.com/pulse.webp",
	}
}

// cleanListings removes test listings by slug.
func cleanListings(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM listings WHERE slug = $1", s)
	}
}

// cleanReviews removes test reviews by author name.
func cleanReviews(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM reviews WHERE name = $1", n)
	}
}

// cleanLeads removes test leads by sender name across the three inboxes.
func cleanLeads(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM contact_messages WHERE name = $1", n)
		db.Exec("DELETE FROM advertise_messages WHERE name = $1", n)
		db.Exec("DELETE FROM listing_interests WHERE name = $1", n)
	}
}
