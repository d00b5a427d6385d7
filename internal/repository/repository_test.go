package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "mysql"), mock
}

var userCols = []string{"id", "type", "name", "city", "state", "phone", "image_link",
	"facebook_link", "website", "is_seeking", "seeking_description", "created_at"}

func TestInsertUserWithVenueCommits(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO venues").WithArgs(int64(7), "123 Main St").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u := model.User{Type: model.TypeVenue, Name: "Blue Note", City: "NYC", State: "NY"}
	err := RunInTx(context.Background(), db, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(context.Background(), tx, &u); err != nil {
			return err
		}
		return repo.InsertSpecTx(context.Background(), tx, u.ID, model.VenueDetails{Address: "123 Main St"})
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("INSERT INTO artists").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	u := model.User{Type: model.TypeArtist, Name: "Miles"}
	err := RunInTx(context.Background(), db, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(context.Background(), tx, &u); err != nil {
			return err
		}
		return repo.InsertSpecTx(context.Background(), tx, u.ID, model.ArtistDetails{})
	})
	assert.EqualError(t, err, "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTxCascades(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM shows WHERE artist_id").WithArgs(int64(3), int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM user_genres").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM venues").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM artists").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM users").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := RunInTx(context.Background(), db, func(tx *sqlx.Tx) error {
		return repo.DeleteTx(context.Background(), tx, 3)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTxMissingUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	for _, table := range []string{"shows", "user_genres", "venues", "artists"} {
		mock.ExpectExec("DELETE FROM " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := RunInTx(context.Background(), db, func(tx *sqlx.Tx) error {
		return repo.DeleteTx(context.Background(), tx, 99)
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileLoadsVenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users WHERE id").WithArgs(int64(5)).WillReturnRows(
		sqlmock.NewRows(userCols).AddRow(5, "Venue", "Blue Note", "NYC", "NY", "", "", "", "", true, "", created))
	mock.ExpectQuery("SELECT address FROM venues").WithArgs(int64(5)).WillReturnRows(
		sqlmock.NewRows([]string{"address"}).AddRow("123 Main St"))

	p, err := repo.Profile(context.Background(), model.TypeVenue, 5)
	require.NoError(t, err)
	assert.Equal(t, "Blue Note", p.Name)
	assert.True(t, p.IsSeeking)
	assert.Equal(t, "123 Main St", p.Address())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileWrongTypeIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("FROM users WHERE id").WillReturnRows(
		sqlmock.NewRows(userCols).AddRow(5, "Artist", "Miles", "NYC", "NY", "", "", "", "", false, "", time.Now()))

	_, err := repo.Profile(context.Background(), model.TypeVenue, 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("FROM users WHERE id").WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListVenuesScansCounts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	cutoff := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users u WHERE u.type").WithArgs(cutoff, "Venue").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(1, "Blue Note", "NYC", "NY", 2).
			AddRow(2, "Village Vanguard", "NYC", "NY", 0))

	rows, err := repo.ListVenues(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].NumUpcomingShows)
	assert.Equal(t, "NYC", rows[1].City)
}

func TestSearchUsersRequiresAllGenres(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("FROM users u LEFT JOIN user_genres ug").
		WithArgs("%nyc%", "NY", "Venue", "Jazz", "Blues").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "image_link", "genre_matches"}).
			AddRow(1, "Blue Note", "Venue", "", 2).
			AddRow(2, "Jazz Only", "Venue", "", 1))

	got, err := repo.SearchUsers(context.Background(), UserFilter{
		City:   "NYC",
		State:  "NY",
		Type:   model.TypeVenue,
		Genres: []string{"Jazz", "Blues", "Jazz"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchUsersWithoutFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("WHERE 1=1 GROUP BY").WithoutArgs().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "image_link", "genre_matches"}).
			AddRow(1, "Blue Note", "Venue", "", 0).
			AddRow(2, "Miles", "Artist", "", 3))

	got, err := repo.SearchUsers(context.Background(), UserFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEnsureCatalogSeedsOnce(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM genres")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	for i := range model.GenreCatalog {
		mock.ExpectExec("INSERT IGNORE INTO genres").
			WithArgs(model.GenreCatalog[i]).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	n, err := repo.EnsureCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 19, n)

	// The second call is answered from the seeded flag without a query.
	n, err = repo.EnsureCatalog(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureCatalogSkipsPopulatedTable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM genres")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(19))

	n, err := repo.EnsureCatalog(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRejectsUnknownGenre(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name FROM genres WHERE name IN").
		WithArgs("Jazz", "Polka").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(11, "Jazz"))
	mock.ExpectRollback()

	err := RunInTx(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := repo.ResolveTx(context.Background(), tx, []string{"Jazz", "Polka"})
		return err
	})
	assert.ErrorIs(t, err, ErrUnknownGenre)
	assert.Contains(t, err.Error(), "Polka")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceDeletesThenInserts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_genres WHERE user_id").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO user_genres").WithArgs(int64(4), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := RunInTx(context.Background(), db, func(tx *sqlx.Tx) error {
		return repo.ReplaceTx(context.Background(), tx, 4, []int64{3})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShowMapsForeignKeyFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)

	mock.ExpectExec("INSERT INTO shows").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := repo.Create(context.Background(), &model.Show{ArtistID: 1, VenueID: 2, StartTime: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidReference)

	var me *mysql.MySQLError
	assert.True(t, errors.As(err, &me))
}

func TestSearchShowsBuildsConjunction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("LOWER.a.name. LIKE").
		WithArgs("%miles%", "ny", from).
		WillReturnRows(sqlmock.NewRows([]string{"show_id", "start_time", "artist_id", "artist_name",
			"artist_image_link", "venue_id", "venue_name", "venue_image_link", "venue_city", "venue_state"}).
			AddRow(9, from.Add(time.Hour), 2, "Miles", "", 1, "Blue Note", "", "NYC", "NY"))

	got, err := repo.SearchShows(context.Background(), ShowFilter{ArtistName: "Miles", State: "ny", From: from})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Blue Note", got[0].VenueName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsPatternEscapes(t *testing.T) {
	assert.Equal(t, "%blue%", containsPattern("Blue"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
}
