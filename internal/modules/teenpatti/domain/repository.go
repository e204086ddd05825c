package domain

import "context"

// RoundRepository persists archived rounds
type RoundRepository interface {
	Create(ctx context.Context, round *RoundRecord) error

	// GetRecent returns the latest archived rounds, newest first
	GetRecent(ctx context.Context, limit int) ([]*RoundRecord, error)
}

// WagerRepository persists admitted wagers
type WagerRepository interface {
	Create(ctx context.Context, wager *WagerRecord) error

	// GetByPlayer returns a player's wagers, newest first
	GetByPlayer(ctx context.Context, userID, operatorID string, limit int) ([]*WagerRecord, error)
}

// SettlementRepository persists terminal settlement records
type SettlementRepository interface {
	// BatchCreate inserts all records of one round's settlement
	BatchCreate(ctx context.Context, records []*SettlementRecord) error

	// GetByPlayer returns a player's settlements, newest first
	GetByPlayer(ctx context.Context, userID, operatorID string, limit int) ([]*SettlementRecord, error)

	// GetLastWin returns the player's most recent winning amount, or 0
	GetLastWin(ctx context.Context, userID, operatorID string) (float64, error)
}
