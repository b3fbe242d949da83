package entity

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	FileId      string
	Description string
	NoteId      *uuid.UUID
	CreatedAt   time.Time
}
