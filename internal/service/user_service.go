package service

import (
	"context"
	"time"

	"notibot-be/internal/chat"
	"notibot-be/internal/entity"
	"notibot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	FindByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error)

	// Register returns the existing user or creates one on first /start.
	Register(ctx context.Context, sender chat.Sender) (*entity.User, bool, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) FindByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().FindByTelegramId(ctx, telegramId)
}

func (s *userService) Register(ctx context.Context, sender chat.Sender) (*entity.User, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByTelegramId(ctx, sender.TelegramID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	user = &entity.User{
		Id:         uuid.New(),
		TelegramId: sender.TelegramID,
		Username:   sender.Username,
		FirstName:  sender.FirstName,
		LastName:   sender.LastName,
		CreatedAt:  time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
