package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/models"
	ucDrill "github.com/primefit-labs/training-scheduler/internal/usecase/drill"
)

type DrillGormRepository struct {
	db *gorm.DB
}

func NewDrillGormRepository(db *gorm.DB) *DrillGormRepository {
	return &DrillGormRepository{db: db}
}

func (r *DrillGormRepository) CreateDrill(
	ctx context.Context,
	d *models.Drill,
) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// Compile-time check
var _ ucDrill.Store = (*DrillGormRepository)(nil)
