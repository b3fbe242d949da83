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

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, content string) (*entity.Note, error)
	List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	AttachImage(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, fileId, caption string) error
	ImageFor(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*entity.Image, *entity.Note, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, content string) (*entity.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, boterr.Validation("note content cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return &note, nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	// Mark which notes already carry an image so the list can offer the
	// right button per note.
	for _, note := range notes {
		count, err := uow.ImageRepository().Count(ctx,
			specification.ByNoteID{NoteID: note.Id},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		note.HasImage = count > 0
	}

	return notes, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return boterr.NotFound("note not found")
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.TypeNoteDeleted, map[string]interface{}{
		"note_id": id,
		"user_id": userId,
	})

	return nil
}

func (s *noteService) AttachImage(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, fileId, caption string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return boterr.NotFound("note not found")
	}

	if caption == "" {
		caption = "No description"
	}

	image := entity.Image{
		Id:          uuid.New(),
		UserId:      userId,
		FileId:      fileId,
		Description: caption,
		NoteId:      &noteId,
		CreatedAt:   time.Now(),
	}
	if err := uow.ImageRepository().Create(ctx, &image); err != nil {
		return err
	}

	s.publish(ctx, events.TypeImageAttached, map[string]interface{}{
		"image_id": image.Id,
		"note_id":  noteId,
		"user_id":  userId,
	})

	return nil
}

func (s *noteService) ImageFor(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*entity.Image, *entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	image, err := uow.ImageRepository().FindOne(ctx,
		specification.ByNoteID{NoteID: noteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, nil, err
	}
	if image == nil {
		return nil, nil, boterr.NotFound("no image attached to this note")
	}

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, nil, err
	}

	return image, note, nil
}

func (s *noteService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Activity events are auxiliary; a publish failure never fails the
	// operation itself.
	_ = s.publisherService.Publish(ctx, evt)
}
