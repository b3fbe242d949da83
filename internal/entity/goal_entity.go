package entity

import (
	"time"

	"github.com/google/uuid"
)

const GoalStatusInProgress = "in progress"

type Goal struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
