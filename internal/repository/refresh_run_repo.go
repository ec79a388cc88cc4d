package repository

import (
	"context"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"gorm.io/gorm"
)

type RefreshRunRepository interface {
	Create(ctx context.Context, run *models.RefreshRun) error
	FindRecent(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

type refreshRunRepository struct {
	db *gorm.DB
}

func NewRefreshRunRepository(db *gorm.DB) RefreshRunRepository {
	return &refreshRunRepository{db: db}
}

func (r *refreshRunRepository) Create(ctx context.Context, run *models.RefreshRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *refreshRunRepository) FindRecent(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	var runs []models.RefreshRun
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
