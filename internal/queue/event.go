// Package queue defines audit message payloads and the RabbitMQ plumbing
// that moves them.
package queue

import "time"

// Audit actions published by the API.
const (
	ActionUserRegistered = "user.registered"
	ActionProductCreated = "product.created"
	ActionProductUpdated = "product.updated"
	ActionProductDeleted = "product.deleted"
)

// AuditEvent records a state-changing operation.  It carries enough context
// for downstream consumers to log or alert without querying the primary
// database.
type AuditEvent struct {
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	ActorID  string    `json:"actor_id,omitempty"`
	At       time.Time `json:"at"`
}
