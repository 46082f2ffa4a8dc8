package events

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

const topic = "order-events"

// Publisher drains the Mongo outbox into Kafka. Events stay unprocessed
// until a publish succeeds, so a broker outage delays delivery instead of
// losing it.
type Publisher struct {
	tick    time.Duration
	timeout time.Duration
	repo    repository.OutboxRepository
	writer  *kafka.Writer
	log     zerolog.Logger
}

func NewPublisher(repo repository.OutboxRepository, log zerolog.Logger, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{
		tick:    time.Second,
		timeout: 5 * time.Second,
		repo:    repo,
		writer:  w,
		log:     log,
	}
}

func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Publisher) Close() {
	if err := p.writer.Close(); err != nil {
		p.log.Warn().Err(err).Msg("failed to close kafka writer")
	}
}

func (p *Publisher) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessed(ctx, 100)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to fetch outbox events")
		return
	}

	for _, event := range events {
		writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		errPublish := p.writer.WriteMessages(writeCtx, kafka.Message{
			Key:   []byte(event.EventType),
			Value: event.Payload,
		})
		cancel()
		if errPublish != nil {
			p.log.Error().Err(errPublish).Str("event_id", event.ID).Msg("failed to publish event")
			continue
		}

		if errMark := p.repo.MarkProcessed(ctx, event.ID); errMark != nil {
			// Publish succeeded; next pass may re-publish. Consumers
			// must tolerate duplicates.
			p.log.Error().Err(errMark).Str("event_id", event.ID).Msg("failed to mark event as processed")
		}
	}
}
