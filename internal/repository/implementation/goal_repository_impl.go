package implementation

import (
	"context"
	"errors"

	"notibot-be/internal/entity"
	"notibot-be/internal/mapper"
	"notibot-be/internal/model"
	"notibot-be/internal/repository/contract"
	"notibot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GoalMapper
}

func NewGoalRepository(db *gorm.DB) contract.GoalRepository {
	return &GoalRepositoryImpl{
		db:     db,
		mapper: mapper.NewGoalMapper(),
	}
}

func (r *GoalRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GoalRepositoryImpl) Create(ctx context.Context, goal *entity.Goal) error {
	m := r.mapper.ToModel(goal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*goal = *r.mapper.ToEntity(m)
	return nil
}

func (r *GoalRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Goal{}, id).Error
}

func (r *GoalRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Goal, error) {
	var m model.Goal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GoalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error) {
	var models []*model.Goal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GoalRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Goal{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
