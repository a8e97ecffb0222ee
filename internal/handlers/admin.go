// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mgepcar/internal/cache"
	"mgepcar/internal/models"
	"mgepcar/internal/slug"
	"mgepcar/internal/stock"
	"mgepcar/internal/storage"
	"mgepcar/internal/store"
)

// Admin groups the authenticated back-office handlers and their
// dependencies: listings CRUD, the three lead inboxes, review moderation,
// token issuance, and the photo library.
type Admin struct {
	listings      *store.ListingStore
	reviews       *store.ReviewStore
	tokens        *store.ReviewTokenStore
	leads         *store.LeadStore
	mediaStore    *store.MediaStore
	userStore     *store.UserStore
	stock         *stock.Store
	respCache     *cache.ResponseCache
	storageClient *storage.Client
}

// NewAdmin creates a new Admin handler group. respCache and storageClient
// may be nil when Valkey or S3 are not configured.
func NewAdmin(listings *store.ListingStore, reviews *store.ReviewStore, tokens *store.ReviewTokenStore, leads *store.LeadStore, mediaStore *store.MediaStore, userStore *store.UserStore, st *stock.Store, respCache *cache.ResponseCache, storageClient *storage.Client) *Admin {
	return &Admin{
		listings:      listings,
		reviews:       reviews,
		tokens:        tokens,
		leads:         leads,
		mediaStore:    mediaStore,
		userStore:     userStore,
		stock:         st,
		respCache:     respCache,
		storageClient: storageClient,
	}
}

// afterCatalogMutation purges the public response cache and refreshes the
// in-memory stock snapshot. Every listing or review mutation funnels
// through here so the storefront never serves stale data longer than one
// request.
func (a *Admin) afterCatalogMutation(ctx context.Context) {
	if a.respCache != nil {
		a.respCache.InvalidateAll(ctx)
	}
	a.stock.Refresh(ctx)
}

// Dashboard serves the back-office landing counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	total, sold, err := a.listings.Count()
	if err != nil {
		slog.Error("dashboard listing counts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	contacts, advertises, interests, err := a.leads.Counts()
	if err != nil {
		slog.Error("dashboard lead counts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	pending, err := a.reviews.CountPending()
	if err != nil {
		slog.Error("dashboard review counts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"listings":        total,
		"listings_sold":   sold,
		"leads_contact":   contacts,
		"leads_advertise": advertises,
		"leads_interest":  interests,
		"reviews_pending": pending,
	})
}

// ListingsList serves every listing for the back-office table, sold
// vehicles included.
func (a *Admin) ListingsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.listings.List(r.Context())
	if err != nil {
		slog.Error("admin listings list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load listings")
		return
	}
	if items == nil {
		items = []models.Listing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": items})
}

// ListingCreate inserts a new vehicle. The slug derives from brand,
// model and version; collisions get a numeric suffix.
func (a *Admin) ListingCreate(w http.ResponseWriter, r *http.Request) {
	var l models.Listing
	if !decodeJSON(w, r, &l) {
		return
	}
	l.Transmission = models.NormalizeTransmission(string(l.Transmission))
	if errMsg := validateListing(&l); errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	s, err := a.uniqueSlug(&l, uuid.Nil)
	if err != nil {
		slog.Error("slug generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create listing")
		return
	}
	l.Slug = s

	created, err := a.listings.Create(&l)
	if err != nil {
		slog.Error("listing create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create listing")
		return
	}

	a.afterCatalogMutation(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// ListingUpdate replaces a vehicle's fields. The slug is regenerated
// when the name changed so detail links stay readable.
func (a *Admin) ListingUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := a.listings.FindByID(id)
	if err != nil {
		slog.Error("listing lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not update listing")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}

	var l models.Listing
	if !decodeJSON(w, r, &l) {
		return
	}
	l.ID = existing.ID
	l.Transmission = models.NormalizeTransmission(string(l.Transmission))
	if errMsg := validateListing(&l); errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	l.Slug = existing.Slug
	if slug.Generate(l.Brand+" "+l.Model+" "+l.Version) != slug.Generate(existing.Brand+" "+existing.Model+" "+existing.Version) {
		s, err := a.uniqueSlug(&l, existing.ID)
		if err != nil {
			slog.Error("slug generation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not update listing")
			return
		}
		l.Slug = s
	}

	if err := a.listings.Update(&l); err != nil {
		slog.Error("listing update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not update listing")
		return
	}

	a.afterCatalogMutation(r.Context())
	writeJSON(w, http.StatusOK, &l)
}

// ListingDelete removes a vehicle and best-effort cleans up its bucket
// objects. Interest leads keep their denormalized listing name.
func (a *Admin) ListingDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := a.listings.FindByID(id)
	if err != nil {
		slog.Error("listing lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete listing")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}

	if err := a.listings.Delete(id); err != nil {
		slog.Error("listing delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete listing")
		return
	}

	// Bucket cleanup is best-effort; the row is already gone.
	if a.storageClient != nil {
		for _, url := range append([]string{existing.Image}, existing.Images...) {
			if key, ok := a.storageClient.ExtractS3Key(url); ok {
				if err := a.storageClient.Delete(r.Context(), a.storageClient.PublicBucket(), key); err != nil {
					slog.Warn("s3 image delete failed", "error", err, "key", key)
				}
			}
		}
	}

	a.afterCatalogMutation(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// uniqueSlug builds a slug from the listing name, appending -2, -3, …
// while the slug belongs to another listing.
func (a *Admin) uniqueSlug(l *models.Listing, exclude uuid.UUID) (string, error) {
	base := slug.Generate(strings.TrimSpace(l.Brand + " " + l.Model + " " + l.Version))
	if base == "" {
		base = "listing"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := a.listings.SlugExists(candidate, exclude)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// ContactsList serves the contact inbox.
func (a *Admin) ContactsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.leads.ListContacts()
	if err != nil {
		slog.Error("contact inbox list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}
	if items == nil {
		items = []models.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": items})
}

// ContactDelete removes a contact message.
func (a *Admin) ContactDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := a.leads.DeleteContact(id); err != nil {
		slog.Error("contact delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// AdvertisesList serves the sell-your-car inbox.
func (a *Admin) AdvertisesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.leads.ListAdvertises()
	if err != nil {
		slog.Error("advertise inbox list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}
	if items == nil {
		items = []models.AdvertiseMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": items})
}

// AdvertiseDelete removes a sell-your-car lead.
func (a *Admin) AdvertiseDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := a.leads.DeleteAdvertise(id); err != nil {
		slog.Error("advertise delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// InterestsList serves the buyer lead inbox.
func (a *Admin) InterestsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.leads.ListInterests()
	if err != nil {
		slog.Error("interest inbox list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}
	if items == nil {
		items = []models.ListingInterest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": items})
}

// InterestDelete removes a buyer lead.
func (a *Admin) InterestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := a.leads.DeleteInterest(id); err != nil {
		slog.Error("interest delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ReviewsList serves every review, pending ones included, for moderation.
func (a *Admin) ReviewsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.reviews.List()
	if err != nil {
		slog.Error("review moderation list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load reviews")
		return
	}
	if items == nil {
		items = []models.Review{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": items})
}

// approveRequest is the payload of the review approval toggle.
type approveRequest struct {
	Approved bool `json:"approved"`
}

// ReviewApprove toggles a review's public visibility.
func (a *Admin) ReviewApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req approveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.reviews.SetApproved(id, req.Approved); err != nil {
		slog.Error("review approve failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not update review")
		return
	}
	a.afterCatalogMutation(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true, "approved": req.Approved})
}

// ReviewDelete removes a review.
func (a *Admin) ReviewDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := a.reviews.Delete(id); err != nil {
		slog.Error("review delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete review")
		return
	}
	a.afterCatalogMutation(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// TokensList serves the outstanding review invitation tokens.
func (a *Admin) TokensList(w http.ResponseWriter, r *http.Request) {
	items, err := a.tokens.List()
	if err != nil {
		slog.Error("token list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load tokens")
		return
	}
	if items == nil {
		items = []models.ReviewToken{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": items})
}

// TokenCreate issues a new single-use review invitation token.
func (a *Admin) TokenCreate(w http.ResponseWriter, r *http.Request) {
	created, err := a.tokens.Create()
	if err != nil {
		slog.Error("token create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create token")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// TokenRevoke deletes an unused token, invalidating its deep link.
func (a *Admin) TokenRevoke(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	ok, err := a.tokens.Consume(token)
	if err != nil {
		slog.Error("token revoke failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not revoke token")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "token not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// parseID reads the {id} route parameter as a UUID, writing a 400 on
// malformed input.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
