package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TelegramId int64     `gorm:"uniqueIndex;not null"`
	Username   string    `gorm:"type:varchar(255)"`
	FirstName  string    `gorm:"type:varchar(255)"`
	LastName   string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
