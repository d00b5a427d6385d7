package model

import "time"

// Show mirrors the 'shows' table. ArtistID and VenueID reference the
// user ids of an artist and a venue respectively.
type Show struct {
	ID        int64     `db:"id"`
	ArtistID  int64     `db:"artist_id"`
	VenueID   int64     `db:"venue_id"`
	StartTime time.Time `db:"start_time"`
}

// ShowEntry is a show denormalized with both sides' display fields.
type ShowEntry struct {
	ShowID          int64     `db:"show_id" json:"show_id"`
	ArtistID        int64     `db:"artist_id" json:"artist_id"`
	ArtistName      string    `db:"artist_name" json:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link" json:"artist_image_link"`
	VenueID         int64     `db:"venue_id" json:"venue_id"`
	VenueName       string    `db:"venue_name" json:"venue_name"`
	VenueImageLink  string    `db:"venue_image_link" json:"venue_image_link"`
	VenueCity       string    `db:"venue_city" json:"-"`
	VenueState      string    `db:"venue_state" json:"-"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
}

// Cutoff returns the start of now's calendar day in now's location.
// Shows starting after the cutoff are upcoming; the rest are past.
func Cutoff(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// IsUpcoming classifies start against cutoff.
func IsUpcoming(start, cutoff time.Time) bool {
	return start.After(cutoff)
}
