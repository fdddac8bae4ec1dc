package movies

import (
	"encoding/json"
	"fmt"
	"net/url"
)

const fallbackPosterBase = "https://placehold.co/300x450?text="

// FallbackPosterURL builds a placeholder poster for records without artwork
func FallbackPosterURL(title string) string {
	return fallbackPosterBase + url.QueryEscape(title)
}

// Record is a loosely shaped catalog entry. Imported catalogs disagree on
// field names: artwork arrives as "poster" or "image", genres as a list or a
// single comma separated string. Unmarshalling normalizes all of them.
type Record struct {
	Title    string
	Genres   []string
	Rating   float64
	Synopsis string
	Duration int
	Status   string
	Poster   string
}

type rawRecord struct {
	Title    string          `json:"title"`
	Genre    json.RawMessage `json:"genre"`
	Genres   json.RawMessage `json:"genres"`
	Rating   float64         `json:"rating"`
	Synopsis string          `json:"synopsis"`
	Duration int             `json:"duration"`
	Status   string          `json:"status"`
	Poster   string          `json:"poster"`
	Image    string          `json:"image"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Title == "" {
		return fmt.Errorf("catalog record missing title")
	}

	genres, err := parseGenres(raw.Genre)
	if err != nil {
		return err
	}
	if len(genres) == 0 {
		if genres, err = parseGenres(raw.Genres); err != nil {
			return err
		}
	}

	poster := raw.Poster
	if poster == "" {
		poster = raw.Image
	}

	status := raw.Status
	if status == "" {
		status = string(StatusNowShowing)
	}

	*r = Record{
		Title:    raw.Title,
		Genres:   genres,
		Rating:   raw.Rating,
		Synopsis: raw.Synopsis,
		Duration: raw.Duration,
		Status:   status,
		Poster:   poster,
	}
	return nil
}

// parseGenres accepts either ["Sci-Fi","Thriller"] or "Sci-Fi, Thriller"
func parseGenres(data json.RawMessage) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return splitGenres(single), nil
	}

	return nil, fmt.Errorf("genre must be a string or a list of strings")
}

// ToMovie converts a normalized record into the canonical model
func (r *Record) ToMovie() Movie {
	status := MovieStatus(r.Status)
	if !status.IsValid() {
		status = StatusNowShowing
	}

	return Movie{
		Title:    r.Title,
		Genres:   joinGenres(r.Genres),
		Rating:   r.Rating,
		Synopsis: r.Synopsis,
		Duration: r.Duration,
		Status:   status,
		Poster:   r.Poster,
	}
}
