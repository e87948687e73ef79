package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultPopRetryDelay is the pause after a failed queue pop.
const DefaultPopRetryDelay = 500 * time.Millisecond

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

type journalConsumer struct {
	logger     *zap.Logger
	queue      Queuer
	journal    EventJournal
	retryDelay time.Duration
}

// NewJournalConsumer provides a consumer which records every popped event into the journal.
func NewJournalConsumer(logger *zap.Logger, q Queuer, journal EventJournal) Consumer {
	return &journalConsumer{logger, q, journal, DefaultPopRetryDelay}
}

// Consume pops events until the context is done. Failures are logged and skipped.
func (jc *journalConsumer) Consume(ctx context.Context, qids ...string) error {
	for {
		qid, event, err := jc.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			jc.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			jc.logger.Error("consumer: error on queue pop call", zap.Error(err), zap.Duration("retry.after", jc.retryDelay))
			select {
			case <-ctx.Done():
				jc.logger.Info("consumer: waiting to retry: context is done: exit", zap.String("reason", ctx.Err().Error()))
				return nil
			case <-time.After(jc.retryDelay):
			}
			continue
		}

		switch qid {
		case AddedQueue, RemovedQueue:
			if err = jc.journal.Append(ctx, event); err != nil {
				jc.logger.Error("consumer: failed to record event",
					zap.String("qid", qid),
					zap.String("event.id", event.ID),
					zap.Error(err),
				)
			}
		default:
			jc.logger.Warn("consumer: received event on unknown queue id", zap.String("qid", qid), zap.Any("event", event))
		}
	}
}
