package service

import (
	"context"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ListingService answers the home page, the directories and the detail
// pages. The past/upcoming cutoff is taken from now on every call.
type ListingService struct {
	users     *repository.UserRepo
	genres    *repository.GenreRepo
	shows     *repository.ShowRepo
	homeLimit int
	now       func() time.Time
}

// NewListingService wires a ListingService. now may be nil for time.Now.
func NewListingService(users *repository.UserRepo, genres *repository.GenreRepo, shows *repository.ShowRepo,
	homeLimit int, now func() time.Time) *ListingService {
	if now == nil {
		now = time.Now
	}
	return &ListingService{users: users, genres: genres, shows: shows, homeLimit: homeLimit, now: now}
}

func (s *ListingService) cutoff() time.Time { return model.Cutoff(s.now()) }

// Home returns the most recently created listings.
func (s *ListingService) Home(ctx context.Context) ([]model.UserSummary, error) {
	return s.users.Recent(ctx, s.homeLimit)
}

// Venues groups every venue by (city, state) in first-seen order.
func (s *ListingService) Venues(ctx context.Context) ([]model.Area, error) {
	rows, err := s.users.ListVenues(ctx, s.cutoff())
	if err != nil {
		return nil, err
	}
	type key struct{ city, state string }
	index := map[key]int{}
	areas := []model.Area{}
	for _, r := range rows {
		k := key{r.City, r.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, model.Area{City: r.City, State: r.State, Venues: []model.UserMatch{}})
		}
		areas[i].Venues = append(areas[i].Venues, r.UserMatch)
	}
	return areas, nil
}

// Artists returns every artist's id and name.
func (s *ListingService) Artists(ctx context.Context) ([]model.UserRef, error) {
	return s.users.ListArtists(ctx)
}

// Profile loads user id of type t with its genre names.
func (s *ListingService) Profile(ctx context.Context, t model.UserType, id int64) (model.Profile, error) {
	p, err := s.users.Profile(ctx, t, id)
	if err != nil {
		return model.Profile{}, err
	}
	p.Genres, err = s.genres.NamesForUser(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// Detail builds the venue or artist page, splitting its shows into past
// and upcoming around today's cutoff.
func (s *ListingService) Detail(ctx context.Context, t model.UserType, id int64) (model.Detail, error) {
	p, err := s.Profile(ctx, t, id)
	if err != nil {
		return model.Detail{}, err
	}
	entries, err := s.shows.ListForUser(ctx, id)
	if err != nil {
		return model.Detail{}, err
	}
	past, upcoming := Partition(entries, s.cutoff())
	return model.Detail{
		ID:                 p.ID,
		Type:               p.Type,
		Name:               p.Name,
		Genres:             p.Genres,
		Address:            p.Address(),
		City:               p.City,
		State:              p.State,
		Phone:              p.Phone,
		Website:            p.Website,
		FacebookLink:       p.FacebookLink,
		IsSeeking:          p.IsSeeking,
		SeekingDescription: p.SeekingDescription,
		ImageLink:          p.ImageLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Partition splits entries around cutoff keeping their order.
func Partition(entries []model.ShowEntry, cutoff time.Time) (past, upcoming []model.ShowEntry) {
	past, upcoming = []model.ShowEntry{}, []model.ShowEntry{}
	for _, e := range entries {
		if model.IsUpcoming(e.StartTime, cutoff) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return past, upcoming
}

// Shows returns the upcoming shows ordered by venue.
func (s *ListingService) Shows(ctx context.Context) ([]model.ShowEntry, error) {
	return s.shows.ListUpcoming(ctx, s.cutoff())
}

// UpcomingCount counts the upcoming shows user id takes part in.
func (s *ListingService) UpcomingCount(ctx context.Context, id int64) (int, error) {
	return s.shows.CountUpcoming(ctx, id, s.cutoff())
}
