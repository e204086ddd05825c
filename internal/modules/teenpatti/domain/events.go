package domain

import (
	"time"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/engine"
)

// Outbound event names on the real-time channel
const (
	EventInfo       = "info"
	EventBet        = "bet"
	EventBetError   = "betError"
	EventCards      = "cards"
	EventResult     = "result"
	EventSettlement = "settlement"
	EventHistory    = "history"
	EventLastWin    = "lastWin"
)

// InfoPayload carries the player's current balance
type InfoPayload struct {
	UserID     string `json:"user_id"`
	OperatorID string `json:"operator_id"`
	Balance    string `json:"balance"`
}

// BetPayload confirms a placed wager
type BetPayload struct {
	Message string `json:"message"`
}

// BetErrorPayload reports a rejected wager to the caller only
type BetErrorPayload struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// ResultPayload reveals the round outcome
type ResultPayload struct {
	RoundID         int64    `json:"round_id"`
	PlayerAHand     []string `json:"playerAHand"`
	PlayerBHand     []string `json:"playerBHand"`
	PlayerAHandType string   `json:"playerAHandType"`
	PlayerBHandType string   `json:"playerBHandType"`
	BonusHandType   string   `json:"bonusHandType"`
	Winner          int      `json:"winner"`
}

// NewResultPayload builds the wire form of an outcome
func NewResultPayload(roundID int64, out *engine.Outcome) ResultPayload {
	return ResultPayload{
		RoundID:         roundID,
		PlayerAHand:     out.HandA.Strings(),
		PlayerBHand:     out.HandB.Strings(),
		PlayerAHandType: out.EvalA.Type.String(),
		PlayerBHandType: out.EvalB.Type.String(),
		BonusHandType:   out.Bonus.Type.String(),
		Winner:          int(out.Winner),
	}
}

// SettlementPayload reports a wager's settlement to its owner
type SettlementPayload struct {
	Message      string               `json:"message"`
	Status       string               `json:"status"` // WIN | LOSS
	WinAmount    string               `json:"mywinningAmount,omitempty"`
	LossAmount   string               `json:"lossAmount,omitempty"`
	RoundID      int64                `json:"round_id"`
	RoundResult  ResultPayload        `json:"roundResult"`
	StakeResults []engine.StakeResult `json:"betResults"`
}

// HistoryPayload is the archived round summary broadcast after CLOSING
type HistoryPayload struct {
	Time       time.Time     `json:"time"`
	RoundID    int64         `json:"round_id"`
	StartDelay int           `json:"start_delay"`
	EndDelay   int           `json:"end_delay"`
	Result     ResultPayload `json:"result"`
}

// LastWinPayload carries the player's most recent winning amount
type LastWinPayload struct {
	MyWinningAmount float64 `json:"myWinningAmount"`
}
