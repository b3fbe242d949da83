package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message archives free text that no flow or menu label consumed.
type Message struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
}
