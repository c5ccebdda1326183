package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chartbot/crown-engine/internal/domain"
)

func TestNormalizeArtist(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.ArtistKey
	}{
		{
			name:     "lowercases",
			input:    "Radiohead",
			expected: "radiohead",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  Boards of Canada  ",
			expected: "boards of canada",
		},
		{
			name:     "collapses internal whitespace",
			input:    "Godspeed  You!\tBlack Emperor",
			expected: "godspeed you! black emperor",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeArtist(tt.input))
		})
	}
}

func TestArtistKeyValid(t *testing.T) {
	assert.True(t, domain.NormalizeArtist("Autechre").Valid())
	assert.False(t, domain.NormalizeArtist("  ").Valid())
}
