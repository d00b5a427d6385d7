package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// UserService creates, updates and deletes venues and artists.
type UserService struct {
	db     *sqlx.DB
	users  *repository.UserRepo
	genres *repository.GenreRepo
	events queue.Publisher
	log    zerolog.Logger
	now    func() time.Time
}

// NewUserService wires a UserService. events may be queue.Nop{}.
func NewUserService(db *sqlx.DB, users *repository.UserRepo, genres *repository.GenreRepo,
	events queue.Publisher, log zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		users:  users,
		genres: genres,
		events: events,
		log:    log.With().Str("component", "user_service").Logger(),
		now:    time.Now,
	}
}

// Create persists p as a new user with its specialization row and one
// genre link per genre, all in one transaction. Returns the new id.
func (s *UserService) Create(ctx context.Context, p model.Profile) (int64, error) {
	err := s.create(ctx, &p)
	countWrite(string(p.Type), "create", err)
	if err != nil {
		s.log.Error().Err(err).Str("type", string(p.Type)).Str("name", p.Name).Msg("create failed")
		return 0, &ListingError{Type: string(p.Type), Name: p.Name, Op: OpCreate, Err: err}
	}
	notify(ctx, s.events, s.log, userEvent(queue.UserListed, p.User, s.now()))
	return p.ID, nil
}

func (s *UserService) create(ctx context.Context, p *model.Profile) error {
	if _, err := s.genres.EnsureCatalog(ctx); err != nil {
		return err
	}
	return repository.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.users.InsertTx(ctx, tx, &p.User); err != nil {
			return err
		}
		if err := s.users.InsertSpecTx(ctx, tx, p.ID, p.Spec); err != nil {
			return err
		}
		ids, err := s.genres.ResolveTx(ctx, tx, p.Genres)
		if err != nil {
			return err
		}
		return s.genres.LinkTx(ctx, tx, p.ID, ids)
	})
}

// Update overwrites the mutable fields of user id, its venue address and
// its whole genre set. A user whose stored type differs from p's is
// reported as not found.
func (s *UserService) Update(ctx context.Context, id int64, p model.Profile) error {
	p.ID = id
	err := repository.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		cur, err := s.users.LockTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.Type != p.Type {
			return repository.ErrUserNotFound
		}
		if err := s.users.UpdateTx(ctx, tx, &p.User); err != nil {
			return err
		}
		if err := s.users.UpdateSpecTx(ctx, tx, id, p.Spec); err != nil {
			return err
		}
		ids, err := s.genres.ResolveTx(ctx, tx, p.Genres)
		if err != nil {
			return err
		}
		return s.genres.ReplaceTx(ctx, tx, id, ids)
	})
	countWrite(string(p.Type), "update", err)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Str("type", string(p.Type)).Msg("update failed")
		return &ListingError{Type: string(p.Type), Name: p.Name, Op: OpUpdate, Err: err}
	}
	notify(ctx, s.events, s.log, userEvent(queue.UserUpdated, p.User, s.now()))
	return nil
}

// Delete removes user id of type t together with its specialization,
// genre links and every show it takes part in.
func (s *UserService) Delete(ctx context.Context, t model.UserType, id int64) error {
	var gone model.User
	err := repository.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		cur, err := s.users.LockTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.Type != t {
			return repository.ErrUserNotFound
		}
		gone = cur
		return s.users.DeleteTx(ctx, tx, id)
	})
	countWrite(string(t), "delete", err)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Str("type", string(t)).Msg("delete failed")
		return &ListingError{Type: string(t), Op: OpDelete, Err: err}
	}
	notify(ctx, s.events, s.log, userEvent(queue.UserDeleted, gone, s.now()))
	return nil
}
