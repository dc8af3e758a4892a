// Package noop provides an event publisher that discards everything. It is
// the default when no broker is configured.
package noop

import (
	"context"

	"github.com/miro-trifonov/teya-tinyLedger/internal/interfaces"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models/events"
)

// Publisher discards all events.
type Publisher struct{}

// NewPublisher creates a no-op publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish drops the event.
func (p *Publisher) Publish(_ context.Context, _ events.TransactionRecorded) error {
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}

// Compile-time check: Publisher implements EventPublisher.
var _ interfaces.EventPublisher = (*Publisher)(nil)
