// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via the "page" and
// "per_page" query parameters and how the resulting counts are delivered in
// the response envelope. Pages are 1-indexed.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	// The manga listing overrides this with [CataloguePerPage].
	DefaultPerPage = 10
	// CataloguePerPage is the default page size for the manga catalogue,
	// which clients typically browse in bulk.
	CataloguePerPage = 100
	// MaxPerPage is the upper bound for items per page to prevent abuse.
	MaxPerPage = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and per-page size from a request's query string.
type Params struct {
	Page    int
	PerPage int
}

// Offset returns the SQL OFFSET value derived from Page and PerPage.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// FromRequest parses "page" and "per_page" query parameters from an HTTP
// request, falling back to defaultPerPage for the page size.
//
// # Clamping
//
// Invalid, negative, or excessive values are clamped to [DefaultPage],
// defaultPerPage, or [MaxPerPage].
func FromRequest(r *http.Request, defaultPerPage int) Params {
	page := parseIntParam(r, "page", DefaultPage)
	perPage := parseIntParam(r, "per_page", defaultPerPage)

	if page < 1 {
		page = DefaultPage
	}

	if perPage < 1 || perPage > MaxPerPage {
		perPage = defaultPerPage
	}

	return Params{Page: page, PerPage: perPage}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
