package unitofwork

import (
	"context"

	"notibot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	GoalRepository() contract.GoalRepository
	ImageRepository() contract.ImageRepository
	MessageRepository() contract.MessageRepository
}
