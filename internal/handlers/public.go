// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mgepcar/internal/cache"
	"mgepcar/internal/catalog"
	"mgepcar/internal/models"
	"mgepcar/internal/stock"
	"mgepcar/internal/store"
)

// Public groups the unauthenticated storefront endpoints. Catalog reads
// come from the in-memory stock snapshot, never straight from PostgreSQL.
type Public struct {
	stock     *stock.Store
	reviews   *store.ReviewStore
	tokens    *store.ReviewTokenStore
	respCache *cache.ResponseCache
}

// NewPublic creates a new Public handler group. respCache may be nil, in
// which case responses are computed on every request.
func NewPublic(st *stock.Store, reviews *store.ReviewStore, tokens *store.ReviewTokenStore, respCache *cache.ResponseCache) *Public {
	return &Public{
		stock:     st,
		reviews:   reviews,
		tokens:    tokens,
		respCache: respCache,
	}
}

// listingsResponse is the payload of GET /api/listings.
type listingsResponse struct {
	Listings   []models.Listing `json:"listings"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
	Years      []int            `json:"years"`
	PriceSteps []int64          `json:"priceSteps"`
}

// Listings serves the filtered, paginated catalog along with the facet
// values the search controls offer. Criteria and page arrive together;
// clients send page=1 whenever they change criteria. Out-of-range pages
// yield an empty slice, not an error.
func (p *Public) Listings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := catalog.Criteria{
		Search:   q.Get("q"),
		MinYear:  atoiOr(q.Get("min_year"), 0),
		MaxPrice: int64(atoiOr(q.Get("max_price"), 0)),
		ShowSold: q.Get("show_sold") == "true",
	}
	page := atoiOr(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	key := cache.ListingsKey(criteria, page)
	if p.respCache != nil {
		if body, ok := p.respCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	all := p.stock.All()
	filtered := catalog.Filter(all, criteria)
	pageSlice, totalPages := catalog.Paginate(filtered, catalog.PageSize, page)
	if pageSlice == nil {
		pageSlice = []models.Listing{}
	}

	resp := listingsResponse{
		Listings:   pageSlice,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
		Years:      catalog.Years(all),
		PriceSteps: catalog.PriceThresholds(all),
	}

	p.writeCached(w, r, key, resp)
}

// listingDetailResponse is the payload of GET /api/listings/{slug}.
type listingDetailResponse struct {
	Listing models.Listing `json:"listing"`
	Gallery []string       `json:"gallery"`
	Image   imageState     `json:"image"`
}

// imageState describes the carousel position for the requested image
// index so the client can render prev/next controls statelessly.
type imageState struct {
	Index   int    `json:"index"`
	Count   int    `json:"count"`
	Current string `json:"current,omitempty"`
	Next    int    `json:"next"`
	Prev    int    `json:"prev"`
}

// Listing serves one vehicle by slug with its assembled photo gallery.
// The optional ?image=N query selects the carousel position; an invalid
// index leaves the carousel at the first image.
func (p *Public) Listing(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	imageIdx := atoiOr(r.URL.Query().Get("image"), 0)

	key := cache.ListingKey(slugParam, imageIdx)
	if p.respCache != nil {
		if body, ok := p.respCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	listing, err := p.stock.FindBySlug(slugParam)
	if err != nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}

	gallery := catalog.Gallery(listing.Image, listing.Images)
	car := catalog.NewCarousel(gallery)
	car.SetIndex(imageIdx) // no-op when out of range

	state := imageState{
		Index:   car.Index(),
		Count:   car.Len(),
		Current: car.Current(),
	}
	next := *car
	next.Next()
	state.Next = next.Index()
	prev := *car
	prev.Previous()
	state.Prev = prev.Index()

	p.writeCached(w, r, key, listingDetailResponse{
		Listing: listing,
		Gallery: gallery,
		Image:   state,
	})
}

// reviewsResponse is the payload of GET /api/reviews.
type reviewsResponse struct {
	Reviews []models.Review `json:"reviews"`
	Rail    railState       `json:"rail"`
}

// railState describes the visible testimonial window for the requested
// slide position.
type railState struct {
	Index   int             `json:"index"`
	Count   int             `json:"count"`
	Visible []models.Review `json:"visible"`
}

// Reviews serves the approved testimonials plus the three-wide rail
// window for the optional ?slide=N position. With fewer than three
// approved reviews the window holds all of them in order.
func (p *Public) Reviews(w http.ResponseWriter, r *http.Request) {
	slide := atoiOr(r.URL.Query().Get("slide"), 0)

	key := cache.ReviewsKey(slide)
	if p.respCache != nil {
		if body, ok := p.respCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	approved, err := p.reviews.ListApproved()
	if err != nil {
		slog.Error("list approved reviews failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load reviews")
		return
	}
	if approved == nil {
		approved = []models.Review{}
	}

	// The rail rotates over review IDs; indexes address the approved set.
	ids := make([]string, len(approved))
	byID := make(map[string]models.Review, len(approved))
	for i, rv := range approved {
		ids[i] = rv.ID.String()
		byID[ids[i]] = rv
	}

	car := catalog.NewCarousel(ids)
	car.SetIndex(slide)

	visible := make([]models.Review, 0, catalog.RailSize)
	for _, id := range car.Window(catalog.RailSize) {
		visible = append(visible, byID[id])
	}

	p.writeCached(w, r, key, reviewsResponse{
		Reviews: approved,
		Rail: railState{
			Index:   car.Index(),
			Count:   car.Len(),
			Visible: visible,
		},
	})
}

// ReviewToken validates a review deep link. A missing or already-used
// token is a 404; the client shows the invalid-link state.
func (p *Public) ReviewToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	found, err := p.tokens.Find(token)
	if err != nil {
		slog.Error("review token lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not validate token")
		return
	}
	if found == nil {
		writeError(w, http.StatusNotFound, "invalid or used token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid":      true,
		"created_at": found.CreatedAt,
	})
}

// Health reports service status and whether the catalog is serving the
// bundled fallback dataset instead of live data.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	n, fallback := p.stock.Serving()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"listings": n,
		"fallback": fallback,
	})
}

// writeCached serializes the response, stores it in the response cache,
// and sends it. Serialization happens once so the cached bytes and the
// live response can never diverge.
func (p *Public) writeCached(w http.ResponseWriter, r *http.Request, key string, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if p.respCache != nil {
		p.respCache.Set(r.Context(), key, buf.Bytes())
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// atoiOr parses s as an int, returning fallback on empty or invalid input.
func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
