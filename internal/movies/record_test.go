package movies

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalGenreList(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{
		"title": "Inception",
		"genres": ["Sci-Fi", "Thriller"],
		"rating": 8.8,
		"duration": 148,
		"poster": "https://example.com/inception.jpg"
	}`), &record)
	require.NoError(t, err)

	assert.Equal(t, "Inception", record.Title)
	assert.Equal(t, []string{"Sci-Fi", "Thriller"}, record.Genres)
	assert.Equal(t, "https://example.com/inception.jpg", record.Poster)
}

func TestRecordUnmarshalGenreString(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{
		"title": "Joker",
		"genre": "Crime, Drama",
		"duration": 122
	}`), &record)
	require.NoError(t, err)

	assert.Equal(t, []string{"Crime", "Drama"}, record.Genres)
}

func TestRecordUnmarshalImageAlias(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{
		"title": "Dune",
		"genres": ["Sci-Fi"],
		"duration": 155,
		"image": "https://example.com/dune.jpg"
	}`), &record)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/dune.jpg", record.Poster)
}

func TestRecordUnmarshalPosterWinsOverImage(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{
		"title": "Dune",
		"duration": 155,
		"poster": "https://example.com/poster.jpg",
		"image": "https://example.com/image.jpg"
	}`), &record)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/poster.jpg", record.Poster)
}

func TestRecordUnmarshalDefaultsStatus(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{"title": "Titanic", "duration": 195}`), &record)
	require.NoError(t, err)

	assert.Equal(t, string(StatusNowShowing), record.Status)
}

func TestRecordUnmarshalRequiresTitle(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{"duration": 100}`), &record)
	assert.Error(t, err)
}

func TestRecordUnmarshalRejectsBadGenreShape(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{"title": "X", "genre": 42}`), &record)
	assert.Error(t, err)
}

func TestFallbackPosterURL(t *testing.T) {
	url := FallbackPosterURL("The Dark Knight")
	assert.Equal(t, "https://placehold.co/300x450?text=The+Dark+Knight", url)
}

func TestToResponseUsesFallbackPoster(t *testing.T) {
	movie := Movie{Title: "Parasite", Genres: "Thriller,Drama"}

	resp := movie.ToResponse()
	assert.Equal(t, FallbackPosterURL("Parasite"), resp.Poster)
	assert.Equal(t, []string{"Thriller", "Drama"}, resp.Genres)
}

func TestToMovieNormalizesStatus(t *testing.T) {
	record := Record{Title: "X", Status: "released", Duration: 100}

	movie := record.ToMovie()
	assert.Equal(t, StatusNowShowing, movie.Status)
}
