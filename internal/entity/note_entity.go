package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool

	// HasImage is derived from the images table, not stored on the note row.
	HasImage bool
}
