// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoanganhvu/mangavault/pkg/pagination"
)

/*
TestFromRequest verifies query-string parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	testCases := []struct {
		name            string
		query           string
		defaultPerPage  int
		expectedPage    int
		expectedPerPage int
	}{
		{
			name:            "Defaults when absent",
			query:           "",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 10,
		},
		{
			name:            "Explicit values",
			query:           "page=3&per_page=25",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    3,
			expectedPerPage: 25,
		},
		{
			name:            "Catalogue default",
			query:           "",
			defaultPerPage:  pagination.CataloguePerPage,
			expectedPage:    1,
			expectedPerPage: 100,
		},
		{
			name:            "Zero page clamps to first",
			query:           "page=0",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 10,
		},
		{
			name:            "Negative page clamps to first",
			query:           "page=-4",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 10,
		},
		{
			name:            "Oversized per_page falls back",
			query:           "per_page=5000",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 10,
		},
		{
			name:            "Zero per_page falls back",
			query:           "per_page=0",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 10,
		},
		{
			name:            "Garbage values fall back",
			query:           "page=abc&per_page=xyz",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 10,
		},
		{
			name:            "Max per_page is allowed",
			query:           "per_page=100",
			defaultPerPage:  pagination.DefaultPerPage,
			expectedPage:    1,
			expectedPerPage: 100,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/?"+testCase.query, nil)

			params := pagination.FromRequest(request, testCase.defaultPerPage)

			assert.Equal(t, testCase.expectedPage, params.Page)
			assert.Equal(t, testCase.expectedPerPage, params.PerPage)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset math.
*/
func TestParams_Offset(t *testing.T) {
	testCases := []struct {
		name           string
		params         pagination.Params
		expectedOffset int
	}{
		{"First page", pagination.Params{Page: 1, PerPage: 10}, 0},
		{"Second page", pagination.Params{Page: 2, PerPage: 10}, 10},
		{"Deep page", pagination.Params{Page: 7, PerPage: 25}, 150},
		{"Zero page treated as first", pagination.Params{Page: 0, PerPage: 10}, 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expectedOffset, testCase.params.Offset())
		})
	}
}
