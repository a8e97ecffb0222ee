// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the pure catalog logic of the storefront:
// filtering the vehicle stock, deriving the filter facets shown in the
// search controls, paginating results, and driving the image carousel and
// testimonial rail. Nothing in this package performs I/O; every function
// is a deterministic transformation over in-memory data.
package catalog

import (
	"sort"
	"strings"

	"mgepcar/internal/models"
)

// Criteria holds the active stock filters. Zero values mean "unconstrained":
// an empty search term, a zero minimum year, and a zero maximum price match
// everything. ShowSold defaults to false, which hides sold vehicles.
type Criteria struct {
	Search   string
	MinYear  int
	MaxPrice int64
	ShowSold bool
}

// IsZero returns true when no filter is active and sold vehicles are hidden,
// i.e. the default stock view.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.MinYear == 0 && c.MaxPrice == 0 && !c.ShowSold
}

// Filter returns the subset of listings matching every active criterion,
// preserving input order. The result is always a fresh slice; the input is
// never mutated.
func Filter(listings []models.Listing, c Criteria) []models.Listing {
	term := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if term != "" {
			brand := strings.ToLower(l.Brand)
			model := strings.ToLower(l.Model)
			if !strings.Contains(brand, term) && !strings.Contains(model, term) {
				continue
			}
		}
		if c.MinYear > 0 && listingYear(l) < c.MinYear {
			continue
		}
		if c.MaxPrice > 0 && l.Price > c.MaxPrice {
			continue
		}
		if !c.ShowSold && l.IsSold {
			continue
		}
		out = append(out, l)
	}
	return out
}

// listingYear returns the manufacture year, falling back to the model year
// for records where only one was entered.
func listingYear(l models.Listing) int {
	if l.YearFab > 0 {
		return l.YearFab
	}
	return l.YearMod
}

// Years returns the distinct manufacture years present across the full
// stock, sorted descending. Computed from the unfiltered set so narrowing
// a filter never removes options from the year dropdown.
func Years(listings []models.Listing) []int {
	seen := make(map[int]bool)
	var years []int
	for _, l := range listings {
		y := listingYear(l)
		if y == 0 || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// priceSteps is the fixed ladder of "up to R$ X" choices offered in the
// price dropdown.
var priceSteps = []int64{
	20_000, 30_000, 40_000, 50_000, 60_000, 70_000, 80_000, 90_000,
	100_000, 110_000, 120_000, 130_000, 140_000, 150_000,
	200_000, 250_000, 300_000, 400_000, 500_000, 750_000, 1_000_000,
}

// priceMargin keeps one step above the most expensive vehicle selectable.
const priceMargin = 10_000

// PriceThresholds returns the ascending subset of the price ladder that is
// relevant for the current stock: each step is included while it does not
// exceed the maximum listing price plus a small margin. Returns nil for an
// empty stock.
func PriceThresholds(listings []models.Listing) []int64 {
	var maxPrice int64
	for _, l := range listings {
		if l.Price > maxPrice {
			maxPrice = l.Price
		}
	}
	if maxPrice == 0 {
		return nil
	}

	var out []int64
	for _, step := range priceSteps {
		if step <= maxPrice+priceMargin {
			out = append(out, step)
		}
	}
	return out
}
