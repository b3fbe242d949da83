package service

import (
	"context"
	"encoding/json"

	"notibot-be/internal/pkg/logger"
	"notibot-be/pkg/events"
	pktNats "notibot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IActivityService drains the activity topic in the background: every
// domain event lands in the structured log and, when a NATS publisher is
// configured, is mirrored externally.
type IActivityService interface {
	Consume(ctx context.Context) error
}

type activityService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher // optional
}

func NewActivityService(
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IActivityService {
	return &activityService{
		pubSub:         pubSub,
		topicName:      topicName,
		logger:         log,
		eventPublisher: eventPublisher,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
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

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("activity", "failed to unmarshal activity event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	s.logger.Info("activity", envelope.Type, envelope.Data)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: envelope.Type,
			Data: envelope.Data,
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			// Mirroring is auxiliary; log and move on.
			s.logger.Warn("activity", "failed to mirror event to NATS", map[string]interface{}{
				"type":  envelope.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
