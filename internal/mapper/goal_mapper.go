package mapper

import (
	"time"

	"notibot-be/internal/entity"
	"notibot-be/internal/model"

	"gorm.io/gorm"
)

type GoalMapper struct{}

func NewGoalMapper() *GoalMapper {
	return &GoalMapper{}
}

func (m *GoalMapper) ToEntity(g *model.Goal) *entity.Goal {
	if g == nil {
		return nil
	}

	var deletedAt *time.Time
	if g.DeletedAt.Valid {
		t := g.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Goal{
		Id:          g.Id,
		UserId:      g.UserId,
		Title:       g.Title,
		Description: g.Description,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   g.DeletedAt.Valid,
	}
}

func (m *GoalMapper) ToModel(g *entity.Goal) *model.Goal {
	if g == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if g.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *g.DeletedAt, Valid: true}
	} else if g.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Goal{
		Id:          g.Id,
		UserId:      g.UserId,
		Title:       g.Title,
		Description: g.Description,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *GoalMapper) ToEntities(goals []*model.Goal) []*entity.Goal {
	entities := make([]*entity.Goal, len(goals))
	for i, g := range goals {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
