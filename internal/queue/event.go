// Package queue carries listing activity events over RabbitMQ and turns
// them into the activity log.
package queue

import "time"

// QueueName is the durable queue every event is routed to.
const QueueName = "fyyur.activity"

// Kind names what happened to a listing.
type Kind string

const (
	UserListed  Kind = "user.listed"
	UserUpdated Kind = "user.updated"
	UserDeleted Kind = "user.deleted"
	ShowListed  Kind = "show.listed"
)

// Event is published after a listing write commits. It contains enough
// for the consumer to write a log line without querying the database.
type Event struct {
	Kind       Kind      `json:"kind"`
	UserID     int64     `json:"user_id,omitempty"`
	UserType   string    `json:"user_type,omitempty"`
	Name       string    `json:"name,omitempty"`
	ShowID     int64     `json:"show_id,omitempty"`
	ArtistID   int64     `json:"artist_id,omitempty"`
	VenueID    int64     `json:"venue_id,omitempty"`
	StartTime  time.Time `json:"start_time,omitzero"`
	OccurredAt time.Time `json:"occurred_at"`
}
