package model

// View-models returned by the listing and search services. JSON names
// follow the page contracts the templates consume.

// UserSummary is a home page entry.
type UserSummary struct {
	ID        int64    `db:"id" json:"id"`
	Type      UserType `db:"type" json:"type"`
	Name      string   `db:"name" json:"name"`
	ImageLink string   `db:"image_link" json:"image_link"`
}

// UserRef is an id/name pair used by the artist directory.
type UserRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// UserMatch is a directory or name-search entry with its upcoming count.
type UserMatch struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	NumUpcomingShows int    `db:"num_upcoming_shows" json:"num_upcoming_shows"`
}

// Area groups venues sharing a (city, state) pair.
type Area struct {
	City   string      `json:"city"`
	State  string      `json:"state"`
	Venues []UserMatch `json:"venues"`
}

// Detail is the venue or artist page.
type Detail struct {
	ID                 int64       `json:"id"`
	Type               UserType    `json:"type"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	Address            string      `json:"address,omitempty"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	Website            string      `json:"website"`
	FacebookLink       string      `json:"facebook_link"`
	IsSeeking          bool        `json:"is_seeking"`
	SeekingDescription string      `json:"seeking_description"`
	ImageLink          string      `json:"image_link"`
	PastShows          []ShowEntry `json:"past_shows"`
	UpcomingShows      []ShowEntry `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// NameSearchResult answers a venue or artist name search.
type NameSearchResult struct {
	Term  string      `json:"search_term"`
	Count int         `json:"count"`
	Data  []UserMatch `json:"data"`
}

// ShowSearchResult answers the free-text and advanced show searches.
type ShowSearchResult struct {
	Term  string      `json:"term,omitempty"`
	Count int         `json:"count"`
	Data  []ShowEntry `json:"data"`
}

// UserSearchResult answers the advanced user search.
type UserSearchResult struct {
	Results      []UserSummary `json:"results"`
	ResultsCount int           `json:"results_count"`
}
