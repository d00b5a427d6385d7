package form

import (
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// startLayouts are tried in order; the first three are read in local time.
var startLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseStartTime parses a submitted show time.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format")
}

// ShowForm is the show create form.
type ShowForm struct {
	ArtistID  int64  `form:"artist_id" json:"artist_id" validate:"required,gt=0"`
	VenueID   int64  `form:"venue_id" json:"venue_id" validate:"required,gt=0"`
	StartTime string `form:"start_time" json:"start_time" validate:"required,starttime"`
}

// Validate checks f.
func (f *ShowForm) Validate() error {
	f.StartTime = strings.TrimSpace(f.StartTime)
	return Check(f)
}

// Show converts a validated form into the row to insert.
func (f *ShowForm) Show() (model.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}, nil
}
