package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/accounts"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/session"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/engine"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

// roundGate answers whether a wager referencing roundID is admissible now.
// Satisfied by the round scheduler.
type roundGate interface {
	CanAcceptBet(roundID int64) bool
}

// BetLedger admits wagers during OPEN and settles them after the reveal.
// It is the only owner of the open wager set.
type BetLedger struct {
	mu         sync.Mutex
	openWagers []*domain.Wager

	gate        roundGate
	sessions    session.Cache
	ledger      accounts.Service
	wagers      domain.WagerRepository
	settlements domain.SettlementRepository
	broadcaster domain.Broadcaster
	cfg         config.GameConfig
}

// NewBetLedger creates the bet ledger
func NewBetLedger(
	gate roundGate,
	sessions session.Cache,
	ledger accounts.Service,
	wagers domain.WagerRepository,
	settlements domain.SettlementRepository,
	broadcaster domain.Broadcaster,
	cfg config.GameConfig,
) *BetLedger {
	return &BetLedger{
		gate:        gate,
		sessions:    sessions,
		ledger:      ledger,
		wagers:      wagers,
		settlements: settlements,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

// ParseStakes decodes the wire stake list "chip-amount,chip-amount,..."
func ParseStakes(raw string) ([]engine.Stake, error) {
	parts := strings.Split(raw, ",")
	stakes := make([]engine.Stake, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), "-")
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed stake %q", part)
		}
		betType, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed bet type %q", fields[0])
		}
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed amount %q", fields[1])
		}
		stakes = append(stakes, engine.Stake{BetType: betType, Amount: amount})
	}
	return stakes, nil
}

// validateStakes enforces the admission rules on a parsed stake list
func (b *BetLedger) validateStakes(stakes []engine.Stake) (float64, error) {
	if len(stakes) == 0 || len(stakes) > engine.MaxStakesPerWager {
		return 0, ErrInvalidBetAmount
	}

	var total float64
	hasA, hasB := false, false
	seen := make(map[int]bool, len(stakes))
	for _, stake := range stakes {
		if stake.BetType < engine.BetPlayerA || stake.BetType > engine.BetBonus {
			return 0, ErrInvalidBetAmount
		}
		if seen[stake.BetType] {
			return 0, ErrInvalidBetAmount
		}
		seen[stake.BetType] = true
		if stake.BetType == engine.BetPlayerA {
			hasA = true
		}
		if stake.BetType == engine.BetPlayerB {
			hasB = true
		}
		if stake.Amount < b.cfg.MinBetAmount || stake.Amount > b.cfg.MaxBetAmount {
			return 0, ErrInvalidBetAmount
		}
		total += stake.Amount
	}

	// a player cannot back both hands of the same round
	if hasA && hasB {
		return 0, ErrInvalidBetAmount
	}
	if total > b.cfg.MaxBetAmount {
		return 0, ErrInvalidBetAmount
	}
	return total, nil
}

// PlaceBet runs the admission pipeline for one wager. On any rejection the
// caller receives the sentinel error and no state changes; the debit is the
// last step that can fail.
func (b *BetLedger) PlaceBet(ctx context.Context, connID string, roundID int64, rawStakes string) (*domain.Wager, error) {
	sess, err := b.sessions.Get(ctx, connID)
	if err != nil || sess == nil {
		return nil, ErrInvalidPlayer
	}

	if !b.gate.CanAcceptBet(roundID) {
		return nil, ErrBettingClosed
	}

	stakes, err := ParseStakes(rawStakes)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("raw", rawStakes).Msg("Unparseable stake list")
		return nil, ErrInvalidBetAmount
	}

	total, err := b.validateStakes(stakes)
	if err != nil {
		return nil, err
	}

	if total > sess.Balance {
		return nil, ErrInsufficientBalance
	}

	wagerID := domain.NewWagerID(roundID, sess.UserID, sess.OperatorID)
	txnID, err := b.ledger.Debit(ctx, accounts.DebitRequest{
		UserID:     sess.UserID,
		OperatorID: sess.OperatorID,
		Token:      sess.Token,
		GameID:     sess.GameID,
		BetID:      wagerID,
		RoundID:    roundID,
		Amount:     total,
	})
	if err != nil {
		logger.Error(ctx).Err(err).
			Str("user_id", sess.UserID).
			Float64("amount", total).
			Msg("Upstream debit failed")
		return nil, ErrUpstreamCancelled
	}

	wager := &domain.Wager{
		WagerID:     wagerID,
		RoundID:     roundID,
		UserID:      sess.UserID,
		OperatorID:  sess.OperatorID,
		ConnID:      connID,
		Token:       sess.Token,
		GameID:      sess.GameID,
		Stakes:      stakes,
		TotalAmount: total,
		DebitTxnID:  txnID,
		Time:        time.Now(),
	}

	b.mu.Lock()
	b.openWagers = append(b.openWagers, wager)
	b.mu.Unlock()

	sess.Balance -= total
	if err := b.sessions.Set(ctx, connID, sess); err != nil {
		logger.Error(ctx).Err(err).Msg("Session balance update failed")
	}

	go b.persistWager(wager)

	b.broadcaster.SendToConn(connID, domain.EventInfo, domain.InfoPayload{
		UserID:     sess.UserID,
		OperatorID: sess.OperatorID,
		Balance:    fmt.Sprintf("%.2f", sess.Balance),
	})
	b.broadcaster.SendToConn(connID, domain.EventBet, domain.BetPayload{
		Message: "Bet Placed Successfully",
	})

	logger.Info(ctx).
		Str("wager_id", wager.WagerID).
		Float64("total", total).
		Int("stakes", len(stakes)).
		Msg("Wager admitted")

	return wager, nil
}

func (b *BetLedger) persistWager(wager *domain.Wager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stakesJSON, _ := json.Marshal(wager.Stakes)
	record := &domain.WagerRecord{
		WagerID:     wager.WagerID,
		RoundID:     wager.RoundID,
		UserID:      wager.UserID,
		OperatorID:  wager.OperatorID,
		TotalAmount: wager.TotalAmount,
		Stakes:      string(stakesJSON),
		TxnID:       wager.DebitTxnID,
		CreatedAt:   wager.Time,
	}
	if err := b.wagers.Create(ctx, record); err != nil {
		logger.ErrorGlobal().Err(err).Str("wager_id", wager.WagerID).Msg("Wager persist failed")
	}
}

// OpenWagerCount reports the size of the open set (for tests and health)
func (b *BetLedger) OpenWagerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.openWagers)
}

// SettleRound drains the open wager set and settles each wager against the
// outcome. Player notification comes first; persistence and the upstream
// credit run in the background and never delay the broadcast.
func (b *BetLedger) SettleRound(ctx context.Context, roundID int64, out *engine.Outcome) error {
	b.mu.Lock()
	drained := b.openWagers
	b.openWagers = nil
	b.mu.Unlock()

	if len(drained) == 0 {
		return nil
	}

	resultPayload := domain.NewResultPayload(roundID, out)
	records := make([]*domain.SettlementRecord, 0, len(drained))

	for _, wager := range drained {
		payout := engine.Payout(wager.Stakes, out, b.cfg.MaxCashoutAmount)

		status := "LOSS"
		if payout.TotalWin > 0 {
			status = "WIN"
		}

		// credit the session optimistically so the fresh balance reaches
		// the player before the upstream ack
		if sess, err := b.sessions.Get(ctx, wager.ConnID); err == nil && sess != nil {
			sess.Balance += payout.TotalWin
			if err := b.sessions.Set(ctx, wager.ConnID, sess); err != nil {
				logger.Error(ctx).Err(err).Msg("Session credit failed")
			}
			b.broadcaster.SendToConn(wager.ConnID, domain.EventInfo, domain.InfoPayload{
				UserID:     sess.UserID,
				OperatorID: sess.OperatorID,
				Balance:    fmt.Sprintf("%.2f", sess.Balance),
			})
		}

		payload := domain.SettlementPayload{
			Status:       status,
			RoundID:      roundID,
			RoundResult:  resultPayload,
			StakeResults: payout.Stakes,
		}
		if status == "WIN" {
			payload.Message = "Congratulations! You Won"
			payload.WinAmount = fmt.Sprintf("%.2f", payout.TotalWin)
		} else {
			payload.Message = "Better Luck Next Time"
			payload.LossAmount = fmt.Sprintf("%.2f", payout.TotalStake)
		}
		b.broadcaster.SendToConn(wager.ConnID, domain.EventSettlement, payload)

		if payout.TotalWin > 0 {
			go b.creditUpstream(wager, payout.TotalWin)
		}

		records = append(records, buildSettlementRecord(wager, payout, resultPayload, status))
	}

	go b.persistSettlements(roundID, records)

	logger.Info(ctx).
		Int64("round_id", roundID).
		Int("wagers", len(drained)).
		Msg("Round settled")
	return nil
}

func (b *BetLedger) creditUpstream(wager *domain.Wager, amount float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := b.ledger.Credit(ctx, accounts.CreditRequest{
		UserID:     wager.UserID,
		OperatorID: wager.OperatorID,
		Token:      wager.Token,
		GameID:     wager.GameID,
		RoundID:    wager.RoundID,
		Amount:     amount,
		TxnRefID:   wager.DebitTxnID,
	})
	if err != nil {
		logger.ErrorGlobal().Err(err).
			Str("wager_id", wager.WagerID).
			Float64("amount", amount).
			Msg("Upstream credit failed")
	}
}

func buildSettlementRecord(wager *domain.Wager, payout engine.PayoutResult, result domain.ResultPayload, status string) *domain.SettlementRecord {
	var maxMult float64
	for _, stake := range payout.Stakes {
		if stake.Multiplier > maxMult {
			maxMult = stake.Multiplier
		}
	}

	stakesJSON, _ := json.Marshal(payout.Stakes)
	resultJSON, _ := json.Marshal(result)
	return &domain.SettlementRecord{
		WagerID:    wager.WagerID,
		RoundID:    wager.RoundID,
		UserID:     wager.UserID,
		OperatorID: wager.OperatorID,
		TotalStake: payout.TotalStake,
		TotalWin:   payout.TotalWin,
		MaxMult:    maxMult,
		Stakes:     string(stakesJSON),
		Result:     string(resultJSON),
		Status:     status,
		CreatedAt:  time.Now(),
	}
}

func (b *BetLedger) persistSettlements(roundID int64, records []*domain.SettlementRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := b.settlements.BatchCreate(ctx, records); err != nil {
		logger.ErrorGlobal().Err(err).Int64("round_id", roundID).Msg("Settlement persist failed")
	}
}
