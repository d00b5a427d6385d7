package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/metrics"
)

// ActivityLog appends one line per event to a file.
type ActivityLog struct {
	mu   sync.Mutex
	path string
}

// NewActivityLog creates the parent directory of path if needed.
func NewActivityLog(path string) (*ActivityLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	return &ActivityLog{path: path}, nil
}

// Append writes the formatted line for ev.
func (a *ActivityLog) Append(ev Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()
	return WriteLine(f, ev)
}

// WriteLine writes the single-line form of ev to w.
func WriteLine(w io.Writer, ev Event) error {
	ts := ev.OccurredAt.UTC().Format(time.RFC3339)
	var err error
	switch ev.Kind {
	case ShowListed:
		_, err = fmt.Fprintf(w, "[%s] %s | show_id=%d | artist_id=%d | venue_id=%d | start_time=%s\n",
			ts, ev.Kind, ev.ShowID, ev.ArtistID, ev.VenueID, ev.StartTime.Format(time.RFC3339))
	default:
		_, err = fmt.Fprintf(w, "[%s] %s | %s_id=%d | name=%q\n",
			ts, ev.Kind, lowerType(ev.UserType), ev.UserID, ev.Name)
	}
	return err
}

func lowerType(t string) string {
	switch t {
	case "Venue":
		return "venue"
	case "Artist":
		return "artist"
	}
	return "user"
}

// Consumer reads QueueName and appends every event to an ActivityLog.
type Consumer struct {
	url  string
	sink interface{ Append(Event) error }
	log  zerolog.Logger
}

// NewConsumer returns a consumer writing to sink.
func NewConsumer(url string, sink *ActivityLog, log zerolog.Logger) *Consumer {
	return &Consumer{url: url, sink: sink, log: log.With().Str("component", "consumer").Logger()}
}

// Run connects, consumes and reconnects with exponential backoff until
// ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("dial broker failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("set QoS failed")
	}
	if _, err := declare(ch); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(d.Body); err != nil {
			c.log.Error().Err(err).Msg("handle message failed")
			metrics.EventsConsumed.WithLabelValues("rejected").Inc()
			// no requeue: a bad payload would loop forever
			_ = d.Nack(false, false)
			continue
		}
		metrics.EventsConsumed.WithLabelValues("ok").Inc()
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *Consumer) handle(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Kind == "" {
		return errors.New("event without kind")
	}
	return c.sink.Append(ev)
}
