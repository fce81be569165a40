// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoanganhvu/mangavault/pkg/slug"
)

/*
TestFrom verifies the slug pipeline against titles typical of the catalogue.
*/
func TestFrom(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple title", "One Piece", "one-piece"},
		{"Already lowercase", "berserk", "berserk"},
		{"Accented characters", "Pokémon Adventures", "pokemon-adventures"},
		{"Punctuation", "JoJo's Bizarre Adventure: Part 7", "jojo-s-bizarre-adventure-part-7"},
		{"Consecutive separators", "Fate / Stay Night", "fate-stay-night"},
		{"Leading and trailing junk", "  --Vagabond-- ", "vagabond"},
		{"Numbers preserved", "20th Century Boys", "20th-century-boys"},
		{"Empty input", "", ""},
		{"Only punctuation", "!?!", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, slug.From(testCase.input))
		})
	}
}
