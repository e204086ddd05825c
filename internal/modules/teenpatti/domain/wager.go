package domain

import (
	"fmt"
	"time"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/engine"
)

// Wager is a player's full set of stakes for one round. Immutable after
// admission; consumed exactly once by settlement.
type Wager struct {
	WagerID     string // BT:<roundID>:<userID>:<operatorID>
	RoundID     int64
	UserID      string
	OperatorID  string
	ConnID      string
	Token       string
	GameID      string
	Stakes      []engine.Stake
	TotalAmount float64
	DebitTxnID  string
	Time        time.Time
}

// NewWagerID builds the composite wager identifier
func NewWagerID(roundID int64, userID, operatorID string) string {
	return fmt.Sprintf("BT:%d:%s:%s", roundID, userID, operatorID)
}
