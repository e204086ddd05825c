package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
)

type roundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a round repository backed by gorm
func NewRoundRepository(db *gorm.DB) domain.RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) Create(ctx context.Context, record *domain.RoundRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *roundRepository) GetRecent(ctx context.Context, limit int) ([]*domain.RoundRecord, error) {
	var records []*domain.RoundRecord
	err := r.db.WithContext(ctx).
		Order("round_id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
