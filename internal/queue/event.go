// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that turns them into an audit trail.
package queue

import "time"

// DefaultQueue is the durable queue domain events are published to.
const DefaultQueue = "studio.events"

// Event types.
const (
	UserRegistered      = "user.registered"
	UserPasswordChanged = "user.password_changed"
	ImageUploaded       = "image.uploaded"
	ImageDeleted        = "image.deleted"
)

// Event is published after a state change succeeds. It carries enough to
// write an audit line without querying the database.
type Event struct {
	Type       string            `json:"type"`
	Subject    string            `json:"subject,omitempty"`
	UserID     uint64            `json:"user_id,omitempty"`
	ResourceID uint64            `json:"resource_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}
