package domain

import "time"

// RoundRecord is the archived round written at the end of CLOSING
type RoundRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	RoundID    int64     `gorm:"not null;index:idx_rounds_round_id" json:"round_id"`
	GameID     string    `gorm:"type:varchar(32);not null" json:"game_id"`
	StartDelay int       `gorm:"not null" json:"start_delay"`
	EndDelay   int       `gorm:"not null" json:"end_delay"`
	Result     string    `gorm:"type:text" json:"result"` // outcome JSON
	CreatedAt  time.Time `gorm:"not null;index:idx_rounds_created_at" json:"created_at"`
}

// TableName overrides the table name
func (RoundRecord) TableName() string {
	return "rounds"
}

// WagerRecord is the persisted admitted wager
type WagerRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	WagerID     string    `gorm:"type:varchar(128);not null;index:idx_wagers_wager_id" json:"wager_id"`
	RoundID     int64     `gorm:"not null;index:idx_wagers_round_id" json:"round_id"`
	UserID      string    `gorm:"type:varchar(128);not null;index:idx_wagers_player,priority:1" json:"user_id"`
	OperatorID  string    `gorm:"type:varchar(128);index:idx_wagers_player,priority:2" json:"operator_id"`
	TotalAmount float64   `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Stakes      string    `gorm:"type:text" json:"stakes"` // stake list JSON
	TxnID       string    `gorm:"type:varchar(64)" json:"txn_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// TableName overrides the table name
func (WagerRecord) TableName() string {
	return "wagers"
}

// SettlementRecord is the terminal per-wager settlement row
type SettlementRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	WagerID    string    `gorm:"type:varchar(128);not null;index:idx_settlements_wager_id" json:"wager_id"`
	RoundID    int64     `gorm:"not null;index:idx_settlements_round_id" json:"round_id"`
	UserID     string    `gorm:"type:varchar(128);not null;index:idx_settlements_player,priority:1" json:"user_id"`
	OperatorID string    `gorm:"type:varchar(128);index:idx_settlements_player,priority:2" json:"operator_id"`
	TotalStake float64   `gorm:"type:decimal(18,2);not null" json:"total_stake"`
	TotalWin   float64   `gorm:"type:decimal(18,2);not null;default:0" json:"total_win"`
	MaxMult    float64   `gorm:"type:decimal(18,2);not null;default:0" json:"max_mult"`
	Stakes     string    `gorm:"type:text" json:"stakes"`                // per-stake result JSON
	Result     string    `gorm:"type:text" json:"result"`                // outcome summary JSON
	Status     string    `gorm:"type:varchar(8);not null" json:"status"` // WIN | LOSS
	CreatedAt  time.Time `gorm:"not null;index:idx_settlements_created_at" json:"created_at"`
}

// TableName overrides the table name
func (SettlementRecord) TableName() string {
	return "settlements"
}
