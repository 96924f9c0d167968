package usecase

import (
	"context"

	"github.com/salesgo/backend/domain"
)

// EventPublisher abstracts the messaging transport so use cases stay
// broker-agnostic. Publish is fire-and-forget: a nil return means the event
// was handed to the transport, nothing more.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
