package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
)

// notify publishes ev after a committed write. A broker failure never
// fails the request; it is logged only.
func notify(ctx context.Context, p queue.Publisher, log zerolog.Logger, ev queue.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("event not published")
	}
}

func userEvent(kind queue.Kind, u model.User, at time.Time) queue.Event {
	return queue.Event{Kind: kind, UserID: u.ID, UserType: string(u.Type), Name: u.Name, OccurredAt: at}
}

func countWrite(typ, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ListingWrites.WithLabelValues(typ, op, outcome).Inc()
}
