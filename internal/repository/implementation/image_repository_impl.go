package implementation

import (
	"context"
	"errors"

	"notibot-be/internal/entity"
	"notibot-be/internal/mapper"
	"notibot-be/internal/model"
	"notibot-be/internal/repository/contract"
	"notibot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImageMapper
}

func NewImageRepository(db *gorm.DB) contract.ImageRepository {
	return &ImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewImageMapper(),
	}
}

func (r *ImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *entity.Image) error {
	m := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ToEntity(m)
	return nil
}

func (r *ImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Image, error) {
	var m model.Image
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Image, error) {
	var models []*model.Image
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ImageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Image{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
