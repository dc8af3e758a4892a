package interfaces

import (
	"context"

	"github.com/miro-trifonov/teya-tinyLedger/internal/models/events"
)

// EventPublisher emits ledger events to an external system. Publishing is
// best-effort: the ledger never retries and never rolls back on a publish
// failure.
type EventPublisher interface {
	Publish(ctx context.Context, event events.TransactionRecorded) error
	Close() error
}
