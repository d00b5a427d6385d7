package model

import (
	"fmt"
	"time"
)

// UserType discriminates the two kinds of listing sharing the users table.
type UserType string

const (
	TypeVenue  UserType = "Venue"
	TypeArtist UserType = "Artist"
)

// Valid reports whether t is one of the known listing types.
func (t UserType) Valid() bool {
	return t == TypeVenue || t == TypeArtist
}

// ParseUserType maps a form or path value onto a UserType. The search form
// sentinels "type" and "both" (and the empty string) mean no type filter
// and return ok=false.
func ParseUserType(s string) (UserType, bool) {
	switch UserType(s) {
	case TypeVenue:
		return TypeVenue, true
	case TypeArtist:
		return TypeArtist, true
	}
	return "", false
}

// User mirrors the 'users' table. Optional text columns hold "" when the
// value was not supplied.
//
// Fields:
//
//	ID                 – users.id, generated by the database.
//	Type               – Venue or Artist; immutable after creation.
//	Name, City, State  – required listing attributes.
//	Phone              – optional, North-American 10 digit format.
//	ImageLink          – optional URL.
//	FacebookLink       – optional URL.
//	Website            – optional URL.
//	IsSeeking          – looking for talent (venues) or venues (artists).
//	SeekingDescription – free text shown when IsSeeking is set.
type User struct {
	ID                 int64     `db:"id"`
	Type               UserType  `db:"type"`
	Name               string    `db:"name"`
	City               string    `db:"city"`
	State              string    `db:"state"`
	Phone              string    `db:"phone"`
	ImageLink          string    `db:"image_link"`
	FacebookLink       string    `db:"facebook_link"`
	Website            string    `db:"website"`
	IsSeeking          bool      `db:"is_seeking"`
	SeekingDescription string    `db:"seeking_description"`
	CreatedAt          time.Time `db:"created_at"`
}

// Specialization is the type-specific payload of a listing. Exactly one
// implementation exists per UserType.
type Specialization interface {
	UserType() UserType
}

// VenueDetails mirrors the 'venues' table minus the shared key.
type VenueDetails struct {
	Address string `db:"address"`
}

func (VenueDetails) UserType() UserType { return TypeVenue }

// ArtistDetails mirrors the 'artists' table. It carries no columns beyond
// identity.
type ArtistDetails struct{}

func (ArtistDetails) UserType() UserType { return TypeArtist }

// Profile is a User together with its specialization and genre names.
type Profile struct {
	User
	Spec   Specialization
	Genres []string
}

// NewProfile pairs a user with its specialization, rejecting a payload
// whose type disagrees with the user row.
func NewProfile(u User, spec Specialization, genres []string) (Profile, error) {
	if spec == nil || spec.UserType() != u.Type {
		return Profile{}, fmt.Errorf("user %d of type %q has mismatched specialization", u.ID, u.Type)
	}
	return Profile{User: u, Spec: spec, Genres: genres}, nil
}

// Address returns the venue address, or "" for artists.
func (p Profile) Address() string {
	if v, ok := p.Spec.(VenueDetails); ok {
		return v.Address
	}
	return ""
}

// SpecFor returns the empty specialization matching t.
func SpecFor(t UserType, address string) (Specialization, error) {
	switch t {
	case TypeVenue:
		return VenueDetails{Address: address}, nil
	case TypeArtist:
		return ArtistDetails{}, nil
	}
	return nil, fmt.Errorf("unknown user type %q", t)
}
