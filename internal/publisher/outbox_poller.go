// Package publisher relays outbox events written alongside orders and
// contact messages to Kafka.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/repository"
)

const (
	batchSize = 100
	// Retention is how long processed events are kept before purging.
	Retention = 7 * 24 * time.Hour
)

type OutboxRepository interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*repository.OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
	PurgeProcessedEvents(ctx context.Context, before time.Time) (int64, error)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OutboxPoller struct {
	eventTick time.Duration
	purgeTick time.Duration
	retention time.Duration
	repo      OutboxRepository
	writer    messageWriter
	log       *slog.Logger
	now       func() time.Time
}

func NewOutboxPoller(repo OutboxRepository, log *slog.Logger, topic string, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return newOutboxPoller(repo, w, log)
}

func newOutboxPoller(repo OutboxRepository, w messageWriter, log *slog.Logger) *OutboxPoller {
	return &OutboxPoller{
		eventTick: time.Second,
		purgeTick: time.Hour,
		retention: Retention,
		repo:      repo,
		writer:    w,
		log:       log,
		now:       time.Now,
	}
}

// Run polls until ctx is done.
func (p *OutboxPoller) Run(ctx context.Context) {
	eventTicker := time.NewTicker(p.eventTick)
	purgeTicker := time.NewTicker(p.purgeTick)
	defer eventTicker.Stop()
	defer purgeTicker.Stop()
	for {
		select {
		case <-eventTicker.C:
			p.processUnpublishedEvents(ctx)
		case <-purgeTicker.C:
			p.purgeProcessedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessedEvents(ctx, batchSize)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to fetch outbox events", "error", err)
		return
	}

	for _, event := range events {
		if err := p.publishToKafka(ctx, event); err != nil {
			p.log.ErrorContext(ctx, "failed to publish outbox event", "event_id", event.ID, "event_type", event.EventType, "error", err)
			continue
		}

		if err := p.repo.MarkEventAsProcessed(ctx, event.ID); err != nil {
			p.log.ErrorContext(ctx, "failed to mark outbox event as processed", "event_id", event.ID, "error", err)
			continue
		}
	}
}

func (p *OutboxPoller) purgeProcessedEvents(ctx context.Context) {
	n, err := p.repo.PurgeProcessedEvents(ctx, p.now().UTC().Add(-p.retention))
	if err != nil {
		p.log.ErrorContext(ctx, "failed to purge processed outbox events", "error", err)
		return
	}
	if n > 0 {
		p.log.InfoContext(ctx, "purged processed outbox events", "count", n)
	}
}

func (p *OutboxPoller) publishToKafka(ctx context.Context, event *repository.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order or contact id, keeps per-aggregate ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
