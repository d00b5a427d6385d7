package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// UserFilter is the conjunctive advanced user search. Zero values are
// not part of the filter.
type UserFilter struct {
	City   string         // case-insensitive substring
	State  string         // exact
	Type   model.UserType // exact
	Genres []string       // every name must be linked to the user
}

// userMatchRow carries the number of filter genres a user matched.
type userMatchRow struct {
	model.UserSummary
	GenreMatches int `db:"genre_matches"`
}

// SearchUsers applies f. Genre membership is a post-filter on the
// grouped count: a user is kept only when it matched as many genre rows
// as there are distinct genres in f, so ALL selected genres must be
// present.
func (r *UserRepo) SearchUsers(ctx context.Context, f UserFilter) ([]model.UserSummary, error) {
	where := []string{}
	args := []any{}

	if f.City != "" {
		where = append(where, "LOWER(u.city) LIKE ?")
		args = append(args, containsPattern(f.City))
	}
	if f.State != "" {
		where = append(where, "u.state = ?")
		args = append(args, f.State)
	}
	if f.Type != "" {
		where = append(where, "u.type = ?")
		args = append(args, f.Type)
	}
	genres := model.UniqueGenres(f.Genres)
	if len(genres) > 0 {
		where = append(where, "g.name IN (?)")
		args = append(args, genres)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	q := `SELECT u.id, u.name, u.type, u.image_link, COUNT(g.id) AS genre_matches
		FROM users u
		LEFT JOIN user_genres ug ON ug.user_id = u.id
		LEFT JOIN genres g ON g.id = ug.genre_id
		WHERE ` + cond + `
		GROUP BY u.id, u.name, u.type, u.image_link
		ORDER BY u.id`

	var err error
	if len(genres) > 0 {
		q, args, err = sqlx.In(q, args...)
		if err != nil {
			return nil, err
		}
	}

	var rows []userMatchRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	out := make([]model.UserSummary, 0, len(rows))
	for _, row := range rows {
		if len(genres) > 0 && row.GenreMatches != len(genres) {
			continue
		}
		out = append(out, row.UserSummary)
	}
	return out, nil
}

// ShowFilter is the advanced show search. String filters are
// case-insensitive substrings except State, which is exact.
type ShowFilter struct {
	ArtistName string
	VenueName  string
	City       string
	State      string
	From       time.Time // start_time >= From when non-zero
}

// SearchShows applies f against shows joined with both sides.
func (r *ShowRepo) SearchShows(ctx context.Context, f ShowFilter) ([]model.ShowEntry, error) {
	where := []string{}
	args := []any{}

	if f.ArtistName != "" {
		where = append(where, "LOWER(a.name) LIKE ?")
		args = append(args, containsPattern(f.ArtistName))
	}
	if f.VenueName != "" {
		where = append(where, "LOWER(v.name) LIKE ?")
		args = append(args, containsPattern(f.VenueName))
	}
	if f.City != "" {
		where = append(where, "LOWER(v.city) LIKE ?")
		args = append(args, containsPattern(f.City))
	}
	if f.State != "" {
		where = append(where, "v.state = ?")
		args = append(args, f.State)
	}
	if !f.From.IsZero() {
		where = append(where, "s.start_time >= ?")
		args = append(args, f.From)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	out := []model.ShowEntry{}
	err := r.db.SelectContext(ctx, &out, showEntrySelect+` WHERE `+cond+` ORDER BY s.start_time`, args...)
	return out, err
}
