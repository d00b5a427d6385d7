package form

import (
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

// Seeking values of the is_seeking select.
const (
	SeekingYes = "Yes"
	SeekingNo  = "No"
)

// UserForm is the venue and artist create/edit form. Type is not
// submitted; the handler sets it from the route. Address only applies
// to venues.
type UserForm struct {
	Type               model.UserType `form:"-" json:"-" validate:"required,oneof=Venue Artist"`
	Name               string         `form:"name" json:"name" validate:"required,max=120"`
	City               string         `form:"city" json:"city" validate:"required,max=120"`
	State              string         `form:"state" json:"state" validate:"required,state"`
	Address            string         `form:"address" json:"address,omitempty" validate:"required_if=Type Venue,max=120"`
	Phone              string         `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string         `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string         `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string         `form:"website" json:"website" validate:"omitempty,url,max=120"`
	IsSeeking          string         `form:"is_seeking" json:"is_seeking" validate:"required,oneof=Yes No"`
	SeekingDescription string         `form:"seeking_description" json:"seeking_description" validate:"max=250"`
	Genres             []string       `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
}

// Normalize trims surrounding whitespace from every text field and
// clears the address of an artist form.
func (f *UserForm) Normalize() {
	for _, p := range []*string{&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.Website, &f.IsSeeking, &f.SeekingDescription} {
		*p = strings.TrimSpace(*p)
	}
	if f.Type == model.TypeArtist {
		f.Address = ""
	}
	f.Genres = model.UniqueGenres(f.Genres)
}

// Validate normalizes f and checks it.
func (f *UserForm) Validate() error {
	f.Normalize()
	return Check(f)
}

// Profile converts a validated form into the record to persist. The id
// is left zero.
func (f *UserForm) Profile() (model.Profile, error) {
	spec, err := model.SpecFor(f.Type, f.Address)
	if err != nil {
		return model.Profile{}, err
	}
	u := model.User{
		Type:               f.Type,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		IsSeeking:          f.IsSeeking == SeekingYes,
		SeekingDescription: f.SeekingDescription,
	}
	return model.NewProfile(u, spec, f.Genres)
}

// FromProfile fills an edit form with the stored values.
func FromProfile(p model.Profile) UserForm {
	seeking := SeekingNo
	if p.IsSeeking {
		seeking = SeekingYes
	}
	genres := p.Genres
	if genres == nil {
		genres = []string{}
	}
	return UserForm{
		Type:               p.Type,
		Name:               p.Name,
		City:               p.City,
		State:              p.State,
		Address:            p.Address(),
		Phone:              p.Phone,
		ImageLink:          p.ImageLink,
		FacebookLink:       p.FacebookLink,
		Website:            p.Website,
		IsSeeking:          seeking,
		SeekingDescription: p.SeekingDescription,
		Genres:             genres,
	}
}
