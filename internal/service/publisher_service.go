package service

import (
	"context"
	"encoding/json"
	"time"

	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// TopicContentBulkUpdated is the in-process topic for finished bulk runs.
const TopicContentBulkUpdated = "content.bulk_updated"

// EventBus publishes to other processes. *nats.Publisher implements it.
type EventBus interface {
	Publish(ctx context.Context, event events.Event) error
}

type IPublisherService interface {
	PublishBulkUpdated(ctx context.Context, evt events.BulkUpdated) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
	topic  string
	bus    EventBus
	logger logger.ILogger
	now    func() time.Time
}

// NewPublisherService publishes to pubSub and, when bus is non-nil, to the
// shared bus. A bus failure is logged, the in-process publish decides the
// result.
func NewPublisherService(pubSub *gochannel.GoChannel, bus EventBus, l logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
		topic:  TopicContentBulkUpdated,
		bus:    bus,
		logger: l,
		now:    time.Now,
	}
}

func (p *publisherService) PublishBulkUpdated(ctx context.Context, evt events.BulkUpdated) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("event_type", events.TypeContentBulkUpdated)
	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		return err
	}

	if p.bus != nil {
		if err := p.bus.Publish(ctx, evt.Event(p.now())); err != nil {
			p.logger.Warn(logModule, "failed to publish to event bus", map[string]interface{}{
				"event": events.TypeContentBulkUpdated,
				"error": err.Error(),
			})
		}
	}
	return nil
}
