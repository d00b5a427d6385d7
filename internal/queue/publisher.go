package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/iliyamo/fyyur/internal/metrics"
)

// Publisher hands events to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event. Used when the broker is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// AMQPPublisher dials the broker per event and publishes a persistent
// JSON message to QueueName. A circuit breaker stops dialing a broker
// that keeps failing so writes are not slowed by connect timeouts.
type AMQPPublisher struct {
	url string
	cb  *gobreaker.CircuitBreaker[struct{}]
	log zerolog.Logger
}

// NewAMQPPublisher returns a publisher for url. The breaker opens after
// five consecutive failures and retries after thirty seconds.
func NewAMQPPublisher(url string, log zerolog.Logger) *AMQPPublisher {
	p := &AMQPPublisher{url: url, log: log.With().Str("component", "publisher").Logger()}
	p.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "amqp-publisher",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			p.log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return p
}

// Publish sends ev. While the breaker is open it fails fast with
// gobreaker.ErrOpenState. Failures are returned, not logged.
func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.send(ctx, ev)
	})
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.EventsPublished.WithLabelValues(string(ev.Kind), outcome).Inc()
	return err
}

func (p *AMQPPublisher) send(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := declare(ch); err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(ev.Kind),
		Timestamp:    ev.OccurredAt.UTC(),
		Body:         body,
	})
}

// declare makes sure the durable queue exists.
func declare(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("queue declare: %w", err)
	}
	return q, nil
}
