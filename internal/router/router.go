// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// dealership API. Routes are organized into public, lead-capture, auth
// and admin groups with appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"mgepcar/internal/handlers"
	"mgepcar/internal/middleware"
	"mgepcar/internal/session"
)

// Rate limits for the public write endpoints. Lead forms are an abuse
// magnet; login gets a tighter window against credential stuffing.
const (
	leadLimit   = 10
	leadWindow  = 1 * time.Minute
	loginLimit  = 5
	loginWindow = 1 * time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned limiters are stopped by the
// caller on shutdown.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, leads *handlers.Leads, public *handlers.Public) (chi.Router, []*middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	leadLimiter := middleware.NewRateLimiter(leadLimit, leadWindow)
	loginLimiter := middleware.NewRateLimiter(loginLimit, loginWindow)

	r.Route("/api", func(r chi.Router) {
		// Public catalog reads — no session, no CSRF.
		r.Get("/health", public.Health)
		r.Get("/listings", public.Listings)
		r.Get("/listings/{slug}", public.Listing)
		r.Get("/reviews", public.Reviews)
		r.Get("/review-tokens/{token}", public.ReviewToken)

		// Lead capture — rate-limited public writes.
		r.Group(func(r chi.Router) {
			r.Use(leadLimiter.Middleware)
			r.Post("/contact", leads.Contact)
			r.Post("/advertise", leads.Advertise)
			r.Post("/interests", leads.Interest)
			r.Post("/reviews", leads.SubmitReview)
		})

		// Authentication.
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.LoadSession(sessionStore))
				r.Get("/me", auth.Me)
				r.Post("/logout", auth.Logout)

				// 2FA — requires a session but NOT completed 2FA.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuth)
					r.Post("/2fa/setup", auth.TwoFASetup)
					r.Post("/2fa/verify", auth.TwoFAVerify)
				})
			})
		})

		// Admin area — session, completed 2FA and CSRF required.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.LoadSession(sessionStore))
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.CSRF)

			r.Get("/dashboard", admin.Dashboard)

			r.Route("/listings", func(r chi.Router) {
				r.Get("/", admin.ListingsList)
				r.Post("/", admin.ListingCreate)
				r.Put("/{id}", admin.ListingUpdate)
				r.Delete("/{id}", admin.ListingDelete)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", admin.ContactsList)
				r.Delete("/{id}", admin.ContactDelete)
			})
			r.Route("/advertises", func(r chi.Router) {
				r.Get("/", admin.AdvertisesList)
				r.Delete("/{id}", admin.AdvertiseDelete)
			})
			r.Route("/interests", func(r chi.Router) {
				r.Get("/", admin.InterestsList)
				r.Delete("/{id}", admin.InterestDelete)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", admin.ReviewsList)
				r.Patch("/{id}", admin.ReviewApprove)
				r.Delete("/{id}", admin.ReviewDelete)
			})

			r.Route("/review-tokens", func(r chi.Router) {
				r.Get("/", admin.TokensList)
				r.Post("/", admin.TokenCreate)
				r.Delete("/{token}", admin.TokenRevoke)
			})

			// Photo library — uploads are admin only.
			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaList)
				r.Get("/{id}", admin.MediaServe)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", admin.MediaUpload)
					r.Delete("/{id}", admin.MediaDelete)
				})
			})
		})
	})

	return r, []*middleware.RateLimiter{leadLimiter, loginLimiter}
}
