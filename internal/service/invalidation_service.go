package service

import (
	"context"
	"encoding/json"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/cache"
	"portfolio-cms-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IInvalidationService reacts to finished bulk runs: cached pages of the
// kind are evicted and open discovery feeds of that kind reload, so
// unpublished records leave public views.
type IInvalidationService interface {
	Consume(ctx context.Context) error
	HandleEvent(ctx context.Context, event events.Event) error
}

type invalidationService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	pages     cache.PageCache
	discovery IDiscoveryService
	logger    logger.ILogger
}

func NewInvalidationService(
	pubSub *gochannel.GoChannel,
	pages cache.PageCache,
	discovery IDiscoveryService,
	l logger.ILogger,
) IInvalidationService {
	return &invalidationService{
		pubSub:    pubSub,
		topicName: TopicContentBulkUpdated,
		pages:     pages,
		discovery: discovery,
		logger:    l,
	}
}

func (s *invalidationService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *invalidationService) processMessage(ctx context.Context, msg *message.Message) {
	var payload events.BulkUpdated
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error(logModule, "failed to unmarshal bulk update", map[string]interface{}{"error": err})
		// invalid messages are acked so they are not redelivered forever
		msg.Ack()
		return
	}
	s.invalidate(ctx, payload)
	msg.Ack()
}

// HandleEvent serves events arriving from other instances over the bus.
func (s *invalidationService) HandleEvent(ctx context.Context, event events.Event) error {
	payload, err := events.BulkUpdatedFrom(event)
	if err != nil {
		return err
	}
	s.invalidate(ctx, payload)
	return nil
}

func (s *invalidationService) invalidate(ctx context.Context, payload events.BulkUpdated) {
	kind := entity.ContentKind(payload.Kind)
	if !kind.Valid() {
		s.logger.Warn(logModule, "ignoring bulk update for unknown kind", map[string]interface{}{"kind": payload.Kind})
		return
	}
	if s.pages != nil {
		if err := cache.InvalidateKind(ctx, s.pages, kind); err != nil {
			s.logger.Warn(logModule, "cache eviction failed", map[string]interface{}{"kind": payload.Kind, "error": err.Error()})
		}
	}
	refreshed := 0
	if s.discovery != nil {
		refreshed = s.discovery.RefreshKind(ctx, kind)
	}
	s.logger.Info(logModule, "content invalidated", map[string]interface{}{
		"kind":      payload.Kind,
		"action":    payload.Action,
		"records":   len(payload.Succeeded),
		"refreshed": refreshed,
	})
}
