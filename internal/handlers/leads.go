// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"mgepcar/internal/models"
	"mgepcar/internal/store"
)

// Leads groups the public write endpoints: the contact form, the
// sell-your-car form, per-listing interest, and review submission.
// Failed writes return the upstream error message as JSON and nothing
// is retried; the client keeps its form state and shows the error.
type Leads struct {
	leads    *store.LeadStore
	listings *store.ListingStore
	reviews  *store.ReviewStore
	tokens   *store.ReviewTokenStore
}

// NewLeads creates a new Leads handler group.
func NewLeads(leads *store.LeadStore, listings *store.ListingStore, reviews *store.ReviewStore, tokens *store.ReviewTokenStore) *Leads {
	return &Leads{
		leads:    leads,
		listings: listings,
		reviews:  reviews,
		tokens:   tokens,
	}
}

// Contact accepts a general inquiry.
func (l *Leads) Contact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if !decodeJSON(w, r, &msg) {
		return
	}
	if errMsg := validateContact(msg.Name, msg.Email, msg.Message); errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	created, err := l.leads.CreateContact(&msg)
	if err != nil {
		slog.Error("contact lead insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save your message")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Advertise accepts a sell-your-car lead. The pendency list is cleared
// server-side whenever has_pendency is false, so a stale client cannot
// persist checkbox state the user retracted.
func (l *Leads) Advertise(w http.ResponseWriter, r *http.Request) {
	var msg models.AdvertiseMessage
	if !decodeJSON(w, r, &msg) {
		return
	}
	if errMsg := validateAdvertise(&msg); errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	msg.ClearPendencies()

	created, err := l.leads.CreateAdvertise(&msg)
	if err != nil {
		slog.Error("advertise lead insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save your offer")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// interestRequest is the payload of POST /api/interests. The listing is
// referenced by ID; its display name is denormalized server-side so the
// lead survives the listing being deleted later.
type interestRequest struct {
	ListingID string `json:"listing_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Whatsapp  string `json:"whatsapp"`
}

// Interest accepts a buyer lead attached to a listing.
func (l *Leads) Interest(w http.ResponseWriter, r *http.Request) {
	var req interestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errMsg := validateInterest(req.Name, req.Email); errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	msg := models.ListingInterest{
		Name:     req.Name,
		Email:    req.Email,
		Whatsapp: req.Whatsapp,
	}

	// Resolve the listing for the denormalized name. An unknown ID is
	// tolerated; the lead is still worth keeping.
	if req.ListingID != "" {
		if id, err := uuid.Parse(req.ListingID); err == nil {
			if listing, err := l.listings.FindByID(id); err == nil && listing != nil {
				msg.ListingID = &listing.ID
				msg.ListingName = listing.Name()
			}
		}
	}

	created, err := l.leads.CreateInterest(&msg)
	if err != nil {
		slog.Error("interest lead insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save your interest")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// reviewRequest is the payload of POST /api/reviews.
type reviewRequest struct {
	Token        string `json:"token"`
	Name         string `json:"name"`
	SocialHandle string `json:"social_handle"`
	Stars        int    `json:"stars"`
	Comment      string `json:"comment"`
	Vehicle      string `json:"vehicle"`
	PurchaseYear int    `json:"purchase_year"`
	PhotoURL     string `json:"photo_url"`
}

// SubmitReview accepts a customer testimonial. When a token is supplied
// it must be valid and is consumed atomically with the submission, so a
// deep link works exactly once. Submitted reviews start unapproved and
// only reach the public rail after moderation.
func (l *Leads) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review := models.Review{
		Name:         req.Name,
		SocialHandle: req.SocialHandle,
		Stars:        req.Stars,
		Comment:      req.Comment,
		Vehicle:      req.Vehicle,
		PurchaseYear: req.PurchaseYear,
		PhotoURL:     req.PhotoURL,
	}
	if err := review.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Consume the token first. The delete is the atomicity point: two
	// concurrent submissions with the same token cannot both observe a
	// successful consume.
	if req.Token != "" {
		ok, err := l.tokens.Consume(req.Token)
		if err != nil {
			slog.Error("review token consume failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not validate token")
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "invalid or used token")
			return
		}
	}

	created, err := l.reviews.Create(&review)
	if err != nil {
		slog.Error("review insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save your review")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
