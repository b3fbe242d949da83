package model

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileId      string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	NoteId      *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (Image) TableName() string {
	return "images"
}
