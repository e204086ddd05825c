// Package accounts talks to the operator's ledger: player detail lookup,
// synchronous stake debits, and asynchronous payout credits.
package accounts

import "context"

// Transaction types on the operator ledger
const (
	TxnTypeDebit  = 0
	TxnTypeCredit = 1
)

// PlayerDetail is the operator's view of an authenticated player
type PlayerDetail struct {
	UserID     string  `json:"user_id"`
	OperatorID string  `json:"operator_id"`
	Balance    float64 `json:"balance"`
	Image      int     `json:"image"`
}

// DebitRequest charges a stake against the player's upstream balance
type DebitRequest struct {
	UserID     string
	OperatorID string
	Token      string
	GameID     string
	BetID      string // wager identifier the debit belongs to
	RoundID    int64
	Amount     float64
}

// CreditRequest pays out settled winnings to the player's upstream balance
type CreditRequest struct {
	UserID     string  `json:"user_id"`
	OperatorID string  `json:"operator_id"`
	Token      string  `json:"token"`
	GameID     string  `json:"game_id"`
	RoundID    int64   `json:"round_id"`
	Amount     float64 `json:"amount"`
	TxnRefID   string  `json:"txn_ref_id"` // debit txn this credit settles
}

// Service is the upstream ledger. Debit is synchronous and authoritative:
// a wager is admitted only after the debit succeeds. Credit is best-effort
// asynchronous delivery.
type Service interface {
	// FetchPlayer resolves a connection token into a player detail
	FetchPlayer(ctx context.Context, token, gameID string) (*PlayerDetail, error)

	// Debit charges the stake and returns the ledger transaction ID
	Debit(ctx context.Context, req DebitRequest) (string, error)

	// Credit enqueues a payout for upstream delivery
	Credit(ctx context.Context, req CreditRequest) error
}
