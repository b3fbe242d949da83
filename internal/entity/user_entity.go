package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id         uuid.UUID
	TelegramId int64
	Username   string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
}
