package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

type stubListings struct{}

func (stubListings) Home(context.Context) ([]model.UserSummary, error) {
	return []model.UserSummary{{ID: 2, Type: model.TypeArtist, Name: "Miles"}}, nil
}

func (stubListings) Venues(context.Context) ([]model.Area, error) {
	return []model.Area{{City: "NYC", State: "NY", Venues: []model.UserMatch{{ID: 1, Name: "Blue Note"}}}}, nil
}

func (stubListings) Artists(context.Context) ([]model.UserRef, error) {
	return []model.UserRef{{ID: 2, Name: "Miles"}}, nil
}

func (stubListings) Profile(_ context.Context, t model.UserType, id int64) (model.Profile, error) {
	if t != model.TypeVenue || id != 1 {
		return model.Profile{}, repository.ErrUserNotFound
	}
	return model.NewProfile(model.User{ID: 1, Type: t, Name: "Blue Note", IsSeeking: true},
		model.VenueDetails{Address: "123 Main St"}, []string{"Jazz"})
}

func (s stubListings) Detail(ctx context.Context, t model.UserType, id int64) (model.Detail, error) {
	p, err := s.Profile(ctx, t, id)
	if err != nil {
		return model.Detail{}, err
	}
	return model.Detail{ID: p.ID, Type: p.Type, Name: p.Name, Address: p.Address(), Genres: p.Genres}, nil
}

func (stubListings) Shows(context.Context) ([]model.ShowEntry, error) {
	return []model.ShowEntry{{ShowID: 9, VenueID: 1, ArtistID: 2}}, nil
}

type stubSearch struct{ users form.UserCriteria }

func (*stubSearch) Names(_ context.Context, _ model.UserType, term string) (model.NameSearchResult, error) {
	return model.NameSearchResult{Term: term, Data: []model.UserMatch{}}, nil
}

func (*stubSearch) ShowsByTerm(_ context.Context, term string) (model.ShowSearchResult, error) {
	return model.ShowSearchResult{Term: term, Data: []model.ShowEntry{}}, nil
}

func (s *stubSearch) Users(_ context.Context, c form.UserCriteria) (model.UserSearchResult, error) {
	s.users = c
	return model.UserSearchResult{Results: []model.UserSummary{}}, nil
}

func (*stubSearch) Shows(context.Context, form.ShowCriteria) (model.ShowSearchResult, error) {
	return model.ShowSearchResult{Data: []model.ShowEntry{}}, nil
}

func (*stubSearch) Choices(context.Context) (form.Choices, error) {
	return form.SearchChoices("Jazz"), nil
}

type nopUsers struct{}

func (nopUsers) Create(context.Context, model.Profile) (int64, error) { return 1, nil }
func (nopUsers) Update(context.Context, int64, model.Profile) error { return nil }
func (nopUsers) Delete(context.Context, model.UserType, int64) error { return nil }

type nopShows struct{}

func (nopShows) Create(context.Context, model.Show) (int64, error) { return 1, nil }

func newServer(search *stubSearch) http.Handler {
	log := zerolog.Nop()
	e := New(log)
	RegisterRoutes(e, Deps{
		Pages:  &handler.PageHandler{Listings: stubListings{}, Log: log},
		Users:  &handler.UserHandler{Users: nopUsers{}, Listings: stubListings{}, Log: log},
		Shows:  &handler.ShowHandler{Shows: nopShows{}, Log: log},
		Search: &handler.SearchHandler{Search: search, Log: log},
	})
	return e
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestReadRoutes(t *testing.T) {
	srv := newServer(&stubSearch{})

	for _, path := range []string{"/", "/venues", "/artists", "/shows", "/venues/1", "/shows/create",
		"/venues/create", "/artists/create", "/venues/1/edit", "/advance_user_search", "/search_shows_advance"} {
		rec, _ := get(t, srv, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), path)
	}
}

func TestCreateRouteIsNotDetail(t *testing.T) {
	srv := newServer(&stubSearch{})
	_, body := get(t, srv, "/venues/create")
	assert.Contains(t, body, "form")
	assert.NotContains(t, body, "upcoming_shows")
}

func TestEditFormPrefilled(t *testing.T) {
	srv := newServer(&stubSearch{})
	_, body := get(t, srv, "/venues/1/edit")
	f := body["form"].(map[string]any)
	assert.Equal(t, "Yes", f["is_seeking"])
	assert.Equal(t, "123 Main St", f["address"])
}

func TestWrongTypeDetailIsNotFound(t *testing.T) {
	srv := newServer(&stubSearch{})
	rec, body := get(t, srv, "/artists/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", body["error"])
}

func TestNameSearchTerm(t *testing.T) {
	srv := newServer(&stubSearch{})
	_, body := get(t, srv, "/venues/search?search_term=blue")
	assert.Equal(t, "blue", body["search_term"])
}

func TestAdvancedUserSearchPlaceholders(t *testing.T) {
	search := &stubSearch{}
	srv := newServer(search)

	v := url.Values{"city": {"NYC"}, "state": {"State"}, "type": {"type"}, "genres": {"Jazz", "Blues"}}
	req := httptest.NewRequest(http.MethodPost, "/advance_user_search", strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, form.UserCriteria{City: "NYC", Genres: []string{"Jazz", "Blues"}}, search.users)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(&stubSearch{})
	get(t, srv, "/")
	rec, _ := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fyyur_http_requests_total")
}
