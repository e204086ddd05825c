package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
)

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a settlement repository backed by gorm
func NewSettlementRepository(db *gorm.DB) domain.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) BatchCreate(ctx context.Context, records []*domain.SettlementRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *settlementRepository) GetByPlayer(ctx context.Context, userID, operatorID string, limit int) ([]*domain.SettlementRecord, error) {
	var records []*domain.SettlementRecord
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

func (r *settlementRepository) GetLastWin(ctx context.Context, userID, operatorID string) (float64, error) {
	var record domain.SettlementRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND operator_id = ? AND status = ?", userID, operatorID, "WIN").
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.TotalWin, nil
}
