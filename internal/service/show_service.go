package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ShowService lists new shows.
type ShowService struct {
	shows  *repository.ShowRepo
	events queue.Publisher
	log    zerolog.Logger
	now    func() time.Time
}

// NewShowService wires a ShowService.
func NewShowService(shows *repository.ShowRepo, events queue.Publisher, log zerolog.Logger) *ShowService {
	return &ShowService{
		shows:  shows,
		events: events,
		log:    log.With().Str("component", "show_service").Logger(),
		now:    time.Now,
	}
}

// Create inserts sh. Any failure, including an artist or venue id that
// does not exist, wraps ErrShowNotListed.
func (s *ShowService) Create(ctx context.Context, sh model.Show) (int64, error) {
	err := s.shows.Create(ctx, &sh)
	countWrite("Show", "create", err)
	if err != nil {
		s.log.Error().Err(err).Int64("artist_id", sh.ArtistID).Int64("venue_id", sh.VenueID).Msg("create show failed")
		return 0, fmt.Errorf("%w: %w", ErrShowNotListed, err)
	}
	notify(ctx, s.events, s.log, queue.Event{
		Kind:       queue.ShowListed,
		ShowID:     sh.ID,
		ArtistID:   sh.ArtistID,
		VenueID:    sh.VenueID,
		StartTime:  sh.StartTime,
		OccurredAt: s.now(),
	})
	return sh.ID, nil
}
