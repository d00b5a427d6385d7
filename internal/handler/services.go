// Package handler exposes the venue, artist, show and search pages over
// HTTP. Handlers depend on the service interfaces below so they can be
// exercised without a database.
package handler

import (
	"context"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

// UserWriter creates, updates and deletes venues and artists.
type UserWriter interface {
	Create(ctx context.Context, p model.Profile) (int64, error)
	Update(ctx context.Context, id int64, p model.Profile) error
	Delete(ctx context.Context, t model.UserType, id int64) error
}

// ShowWriter lists shows.
type ShowWriter interface {
	Create(ctx context.Context, s model.Show) (int64, error)
}

// Lister answers the read-only pages.
type Lister interface {
	Home(ctx context.Context) ([]model.UserSummary, error)
	Venues(ctx context.Context) ([]model.Area, error)
	Artists(ctx context.Context) ([]model.UserRef, error)
	Profile(ctx context.Context, t model.UserType, id int64) (model.Profile, error)
	Detail(ctx context.Context, t model.UserType, id int64) (model.Detail, error)
	Shows(ctx context.Context) ([]model.ShowEntry, error)
}

// Searcher answers the search pages.
type Searcher interface {
	Names(ctx context.Context, t model.UserType, term string) (model.NameSearchResult, error)
	ShowsByTerm(ctx context.Context, term string) (model.ShowSearchResult, error)
	Users(ctx context.Context, c form.UserCriteria) (model.UserSearchResult, error)
	Shows(ctx context.Context, c form.ShowCriteria) (model.ShowSearchResult, error)
	Choices(ctx context.Context) (form.Choices, error)
}
