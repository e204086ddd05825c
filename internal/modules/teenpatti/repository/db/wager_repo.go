package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
)

type wagerRepository struct {
	db *gorm.DB
}

// NewWagerRepository creates a wager repository backed by gorm
func NewWagerRepository(db *gorm.DB) domain.WagerRepository {
	return &wagerRepository{db: db}
}

func (r *wagerRepository) Create(ctx context.Context, wager *domain.WagerRecord) error {
	return r.db.WithContext(ctx).Create(wager).Error
}

func (r *wagerRepository) GetByPlayer(ctx context.Context, userID, operatorID string, limit int) ([]*domain.WagerRecord, error) {
	var records []*domain.WagerRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND operator_id = ?", userID, operatorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
