package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalabs/cardioscope/internal/domain/prediction"
)

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

var _ prediction.Repository = (*PredictionRepository)(nil)

func (r *PredictionRepository) Create(ctx context.Context, p *prediction.Prediction) error {
	if !p.Source.IsValid() {
		return prediction.ErrInvalidSource
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*prediction.Prediction, error) {
	var p prediction.Prediction
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prediction.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("fetching prediction: %w", err)
	}
	return &p, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, q *prediction.ListQuery) ([]*prediction.Prediction, error) {
	var rows []*prediction.Prediction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", q.UserID).
		Order("created_at DESC").
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing predictions: %w", err)
	}
	return rows, nil
}

func (r *PredictionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&prediction.Prediction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting predictions: %w", err)
	}
	return count, nil
}
