package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackCatalog(t *testing.T) {
	catalog := FallbackCatalog("")
	require.Len(t, catalog, 10)

	// Same title always maps to the same id across degraded reads
	again := FallbackCatalog("")
	assert.Equal(t, catalog[0].ID, again[0].ID)

	for _, movie := range catalog {
		assert.NotEmpty(t, movie.ID)
		assert.NotEmpty(t, movie.Title)
		assert.NotEmpty(t, movie.Poster)
	}
}

func TestFallbackCatalogStatusFilter(t *testing.T) {
	nowShowing := FallbackCatalog(string(StatusNowShowing))
	comingSoon := FallbackCatalog(string(StatusComingSoon))

	assert.Len(t, nowShowing, 7)
	assert.Len(t, comingSoon, 3)

	for _, movie := range comingSoon {
		assert.Equal(t, StatusComingSoon, movie.Status)
	}
}
