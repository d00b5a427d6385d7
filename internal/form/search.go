package form

import (
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// TermForm is the single search box of the name and show searches.
type TermForm struct {
	Term string `form:"search_term" json:"search_term" query:"search_term"`
}

// UserSearchForm is the advanced venue/artist search. "State" in State
// and "type"/"both" in Type are the unset choices.
type UserSearchForm struct {
	City   string   `form:"city" json:"city" validate:"max=120"`
	State  string   `form:"state" json:"state" validate:"omitempty,state|eq=State"`
	Type   string   `form:"type" json:"type" validate:"omitempty,oneof=Venue Artist type both"`
	Genres []string `form:"genres" json:"genres" validate:"omitempty,dive,genre"`
}

// UserCriteria is a validated UserSearchForm with the placeholders
// removed.
type UserCriteria struct {
	City   string
	State  string
	Type   model.UserType
	Genres []string
}

// Criteria validates f and drops the placeholder values.
func (f *UserSearchForm) Criteria() (UserCriteria, error) {
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Type = strings.TrimSpace(f.Type)
	if err := Check(f); err != nil {
		return UserCriteria{}, err
	}
	c := UserCriteria{City: f.City, Genres: model.UniqueGenres(f.Genres)}
	if f.State != model.StateUnset {
		c.State = f.State
	}
	if t, ok := model.ParseUserType(f.Type); ok {
		c.Type = t
	}
	return c, nil
}

// ShowSearchForm is the advanced show search.
type ShowSearchForm struct {
	ArtistName string `form:"artist_name" json:"artist_name" validate:"max=120"`
	VenueName  string `form:"venue_name" json:"venue_name" validate:"max=120"`
	City       string `form:"city" json:"city" validate:"max=120"`
	State      string `form:"state" json:"state" validate:"omitempty,state|eq=State"`
	From       string `form:"from" json:"from" validate:"omitempty,starttime"`
}

// ShowCriteria is a validated ShowSearchForm with the placeholders
// removed.
type ShowCriteria struct {
	ArtistName string
	VenueName  string
	City       string
	State      string
	From       time.Time
}

// Criteria validates f and drops the placeholder values.
func (f *ShowSearchForm) Criteria() (ShowCriteria, error) {
	for _, p := range []*string{&f.ArtistName, &f.VenueName, &f.City, &f.State, &f.From} {
		*p = strings.TrimSpace(*p)
	}
	if err := Check(f); err != nil {
		return ShowCriteria{}, err
	}
	c := ShowCriteria{ArtistName: f.ArtistName, VenueName: f.VenueName, City: f.City}
	if f.State != model.StateUnset {
		c.State = f.State
	}
	if f.From != "" {
		from, err := ParseStartTime(f.From)
		if err != nil {
			return ShowCriteria{}, err
		}
		c.From = from
	}
	return c, nil
}

// Choices are the select options the search forms offer.
type Choices struct {
	Types  []string `json:"types"`
	States []string `json:"states"`
	Genres []string `json:"genres"`
}

// SearchChoices returns the options with their placeholders first.
// Without genres the seeded catalog is offered.
func SearchChoices(genres ...string) Choices {
	if len(genres) == 0 {
		genres = model.GenreCatalog
	}
	return Choices{
		Types:  []string{"both", string(model.TypeVenue), string(model.TypeArtist)},
		States: append([]string{model.StateUnset}, model.States...),
		Genres: append([]string{}, genres...),
	}
}
