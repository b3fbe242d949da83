package service

import (
	"context"

	"notibot-be/internal/repository/specification"
	"notibot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// StatsCounts aggregates how many records of each kind a user owns.
type StatsCounts struct {
	Notes    int64
	Goals    int64
	Images   int64
	Messages int64
}

type IStatsService interface {
	Counts(ctx context.Context, userId uuid.UUID) (*StatsCounts, error)
}

type statsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewStatsService(uowFactory unitofwork.RepositoryFactory) IStatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

func (s *statsService) Counts(ctx context.Context, userId uuid.UUID) (*StatsCounts, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owned := specification.OwnedBy{UserID: userId}

	notes, err := uow.NoteRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	goals, err := uow.GoalRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	images, err := uow.ImageRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	messages, err := uow.MessageRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}

	return &StatsCounts{
		Notes:    notes,
		Goals:    goals,
		Images:   images,
		Messages: messages,
	}, nil
}
