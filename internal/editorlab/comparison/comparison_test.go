package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	assert.Len(t, table.Editors, 3)
	require.Len(t, table.Aspects, 8)

	setup, ok := table.Aspect("setup difficulty")
	require.True(t, ok)
	assert.Equal(t, Rating{Rating: 1, Text: "EASY", Description: "Minimal configuration required"}, setup.Ratings["quill"])
	assert.Equal(t, 4, setup.Ratings["slate"].Rating)

	prod, ok := table.Aspect("Production Ready")
	require.True(t, ok)
	assert.Equal(t, "Yes", prod.Ratings["lexical"].Text)

	_, ok = table.Aspect("Price")
	assert.False(t, ok)

	quill, ok := table.Editor("quill")
	require.True(t, ok)
	assert.Len(t, quill.Guide, 5)
	assert.Equal(t, "Quill Editor\n├── Built-in Toolbar\n├── Content Area\n├── Built-in Plugins\n└── HTML Output", quill.Architecture.Tree())
}

func TestParseValidation(t *testing.T) {
	tests := map[string]string{
		"rating out of range": `
title: t
editors: [{key: a, title: A, npm: "https://example.com", architecture: {root: A}}]
aspects: [{name: x, ratings: {a: {rating: 6, text: hard}}}]`,
		"missing rating": `
title: t
editors: [{key: a, title: A, npm: "https://example.com", architecture: {root: A}}, {key: b, title: B, npm: "https://example.com", architecture: {root: B}}]
aspects: [{name: x, ratings: {a: {rating: 3, text: ok}}}]`,
		"bad yaml": `title: [`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestStars(t *testing.T) {
	assert.Equal(t, "⭐☆☆☆☆", Stars(1))
	assert.Equal(t, "⭐⭐⭐⭐⭐", Stars(5))
	assert.Equal(t, "☆☆☆☆☆", Stars(-1))
	assert.Equal(t, "⭐⭐⭐⭐⭐", Stars(7))
}

func TestRatingColor(t *testing.T) {
	assert.Equal(t, "#28a745", RatingColor(1))
	assert.Equal(t, "#28a745", RatingColor(2))
	assert.Equal(t, "#ffc107", RatingColor(3))
	assert.Equal(t, "#dc3545", RatingColor(4))
	assert.Equal(t, "#dc3545", RatingColor(5))
}
