package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// SearchService answers the name, show and advanced searches.
type SearchService struct {
	users  *repository.UserRepo
	genres *repository.GenreRepo
	shows  *repository.ShowRepo
	now    func() time.Time
}

// NewSearchService wires a SearchService. now may be nil for time.Now.
func NewSearchService(users *repository.UserRepo, genres *repository.GenreRepo, shows *repository.ShowRepo, now func() time.Time) *SearchService {
	if now == nil {
		now = time.Now
	}
	return &SearchService{users: users, genres: genres, shows: shows, now: now}
}

// Choices returns the advanced search options, genres as stored.
func (s *SearchService) Choices(ctx context.Context) (form.Choices, error) {
	gs, err := s.genres.All(ctx)
	if err != nil {
		return form.Choices{}, err
	}
	names := make([]string, 0, len(gs))
	for _, g := range gs {
		names = append(names, g.Name)
	}
	return form.SearchChoices(names...), nil
}

// Names matches term against the names of listings of type t.
func (s *SearchService) Names(ctx context.Context, t model.UserType, term string) (model.NameSearchResult, error) {
	matches, err := s.users.SearchByName(ctx, t, term, model.Cutoff(s.now()))
	if err != nil {
		return model.NameSearchResult{}, err
	}
	return model.NameSearchResult{Term: term, Count: len(matches), Data: matches}, nil
}

// ShowsByTerm keeps the shows whose artist or venue name contains term,
// ignoring case.
func (s *SearchService) ShowsByTerm(ctx context.Context, term string) (model.ShowSearchResult, error) {
	all, err := s.shows.ListAll(ctx)
	if err != nil {
		return model.ShowSearchResult{}, err
	}
	needle := strings.ToLower(term)
	data := []model.ShowEntry{}
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.ArtistName), needle) ||
			strings.Contains(strings.ToLower(e.VenueName), needle) {
			data = append(data, e)
		}
	}
	return model.ShowSearchResult{Term: term, Count: len(data), Data: data}, nil
}

// Users runs the advanced venue/artist search. Every selected genre
// must be linked to a user for it to match.
func (s *SearchService) Users(ctx context.Context, c form.UserCriteria) (model.UserSearchResult, error) {
	res, err := s.users.SearchUsers(ctx, repository.UserFilter{
		City:   c.City,
		State:  c.State,
		Type:   c.Type,
		Genres: c.Genres,
	})
	if err != nil {
		return model.UserSearchResult{}, err
	}
	return model.UserSearchResult{Results: res, ResultsCount: len(res)}, nil
}

// Shows runs the advanced show search.
func (s *SearchService) Shows(ctx context.Context, c form.ShowCriteria) (model.ShowSearchResult, error) {
	data, err := s.shows.SearchShows(ctx, repository.ShowFilter{
		ArtistName: c.ArtistName,
		VenueName:  c.VenueName,
		City:       c.City,
		State:      c.State,
		From:       c.From,
	})
	if err != nil {
		return model.ShowSearchResult{}, err
	}
	return model.ShowSearchResult{Count: len(data), Data: data}, nil
}
