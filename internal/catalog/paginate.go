// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "mgepcar/internal/models"

// PageSize is the number of listings shown per stock page.
const PageSize = 9

// Paginate slices a filtered listing set into the requested 1-indexed page
// and reports the total page count (ceil(len/pageSize); 0 for an empty set).
//
// No bounds repair happens here: a page beyond the end yields an empty
// slice. Callers own the invariant that any criteria change resets the
// requested page back to 1, since the old page number may not exist against
// the new filtered count.
func Paginate(listings []models.Listing, pageSize, page int) ([]models.Listing, int) {
	if pageSize <= 0 || page <= 0 {
		return []models.Listing{}, 0
	}

	totalPages := (len(listings) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(listings) {
		return []models.Listing{}, totalPages
	}
	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end], totalPages
}
