package messaging

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/salesgo/backend/domain"
	"github.com/salesgo/backend/internal/infrastructure/journal"
	"github.com/salesgo/backend/usecase"
)

// JournaledPublisher records every successfully published event in the local
// journal. Journaling is best-effort: a journal write failure is logged but
// never fails the publication.
type JournaledPublisher struct {
	next   usecase.EventPublisher
	store  *journal.Store
	logger *zap.Logger
}

func WithJournal(next usecase.EventPublisher, store *journal.Store, logger *zap.Logger) *JournaledPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournaledPublisher{
		next:   next,
		store:  store,
		logger: logger,
	}
}

func (p *JournaledPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := p.next.Publish(ctx, event); err != nil {
		return err
	}

	if p.store != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			err = p.store.Append(journal.Entry{Name: event.EventName(), Payload: payload})
		}
		if err != nil {
			p.logger.Warn("failed to journal event", zap.String("event", event.EventName()), zap.Error(err))
		}
	}
	return nil
}

var _ usecase.EventPublisher = (*JournaledPublisher)(nil)
var _ usecase.EventPublisher = (*RedisPublisher)(nil)
var _ usecase.EventPublisher = (*Bus)(nil)
