package contract

import (
	"context"

	"notibot-be/internal/entity"
	"notibot-be/internal/repository/specification"
)

type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Image, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Image, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
