package movies

import "github.com/google/uuid"

// Bundled catalog served when the database is unreachable. Browsing keeps
// working in degraded mode; booking still requires live storage.
var fallbackCatalog = []Record{
	{
		Title:    "Inception",
		Genres:   []string{"Sci-Fi", "Thriller"},
		Rating:   8.8,
		Synopsis: "A thief who enters dream worlds...",
		Duration: 148,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "The Dark Knight",
		Genres:   []string{"Action", "Drama"},
		Rating:   9.0,
		Synopsis: "Batman raises the stakes...",
		Duration: 152,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "Interstellar",
		Genres:   []string{"Sci-Fi", "Adventure"},
		Rating:   8.6,
		Synopsis: "A journey through spacetime...",
		Duration: 169,
		Status:   string(StatusComingSoon),
	},
	{
		Title:    "Avengers: Endgame",
		Genres:   []string{"Action", "Sci-Fi"},
		Rating:   8.4,
		Synopsis: "The Avengers assemble one last time...",
		Duration: 181,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "Parasite",
		Genres:   []string{"Thriller", "Drama"},
		Rating:   8.5,
		Synopsis: "A dark tale of class divide...",
		Duration: 132,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "Joker",
		Genres:   []string{"Crime", "Drama"},
		Rating:   8.4,
		Synopsis: "A troubled man descends into madness...",
		Duration: 122,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "Dune",
		Genres:   []string{"Sci-Fi", "Adventure"},
		Rating:   8.1,
		Synopsis: "A noble family becomes embroiled in war...",
		Duration: 155,
		Status:   string(StatusComingSoon),
	},
	{
		Title:    "The Matrix",
		Genres:   []string{"Sci-Fi", "Action"},
		Rating:   8.7,
		Synopsis: "A hacker discovers the truth about reality...",
		Duration: 136,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "Titanic",
		Genres:   []string{"Romance", "Drama"},
		Rating:   7.9,
		Synopsis: "A love story aboard a doomed ship...",
		Duration: 195,
		Status:   string(StatusNowShowing),
	},
	{
		Title:    "Oppenheimer",
		Genres:   []string{"Drama", "History"},
		Rating:   8.9,
		Synopsis: "The story of the father of the atomic bomb...",
		Duration: 180,
		Status:   string(StatusComingSoon),
	},
}

// FallbackCatalog returns the bundled dataset as responses, honoring the
// optional status filter. IDs are derived from titles so repeated degraded
// reads stay stable.
func FallbackCatalog(status string) []MovieResponse {
	responses := make([]MovieResponse, 0, len(fallbackCatalog))
	for _, record := range fallbackCatalog {
		movie := record.ToMovie()
		movie.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(movie.Title))
		if status != "" && string(movie.Status) != status {
			continue
		}
		responses = append(responses, movie.ToResponse())
	}
	return responses
}

// SeedRecords exposes the bundled dataset for the seeding command
func SeedRecords() []Record {
	records := make([]Record, len(fallbackCatalog))
	copy(records, fallbackCatalog)
	return records
}
