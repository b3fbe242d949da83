package service

import (
	"context"
	"strings"
	"time"

	"notibot-be/internal/entity"
	"notibot-be/internal/pkg/boterr"
	"notibot-be/internal/repository/specification"
	"notibot-be/internal/repository/unitofwork"
	"notibot-be/pkg/events"

	"github.com/google/uuid"
)

type IGoalService interface {
	Create(ctx context.Context, userId uuid.UUID, title, description string) (*entity.Goal, error)
	List(ctx context.Context, userId uuid.UUID) ([]*entity.Goal, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type goalService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewGoalService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IGoalService {
	return &goalService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *goalService) Create(ctx context.Context, userId uuid.UUID, title, description string) (*entity.Goal, error) {
	if strings.TrimSpace(title) == "" {
		return nil, boterr.Validation("goal title cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, boterr.Validation("goal description cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	goal := entity.Goal{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       title,
		Description: description,
		Status:      entity.GoalStatusInProgress,
		CreatedAt:   time.Now(),
	}

	if err := uow.GoalRepository().Create(ctx, &goal); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeGoalCreated, map[string]interface{}{
		"goal_id": goal.Id,
		"user_id": userId,
	})

	return &goal, nil
}

func (s *goalService) List(ctx context.Context, userId uuid.UUID) ([]*entity.Goal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GoalRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
}

func (s *goalService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	goal, err := uow.GoalRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if goal == nil {
		return boterr.NotFound("goal not found")
	}

	if err := uow.GoalRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.TypeGoalDeleted, map[string]interface{}{
		"goal_id": id,
		"user_id": userId,
	})

	return nil
}

func (s *goalService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	_ = s.publisherService.Publish(ctx, evt)
}
