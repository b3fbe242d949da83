package service

import (
	"context"
	"time"

	"notibot-be/internal/entity"
	"notibot-be/internal/repository/unitofwork"
	"notibot-be/pkg/events"

	"github.com/google/uuid"
)

type IMessageService interface {
	// Archive persists free text that neither a flow nor a menu label
	// consumed.
	Archive(ctx context.Context, userId uuid.UUID, text string) (*entity.Message, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *messageService) Archive(ctx context.Context, userId uuid.UUID, text string) (*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message := entity.Message{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   text,
		CreatedAt: time.Now(),
	}

	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}

	if s.publisherService != nil {
		evt := events.BaseEvent{
			Type: events.TypeMessageArchived,
			Data: map[string]interface{}{
				"message_id": message.Id,
				"user_id":    userId,
			},
			OccurredAt: time.Now(),
		}
		_ = s.publisherService.Publish(ctx, evt)
	}

	return &message, nil
}
