package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/accounts"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/session"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/engine"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/usecase"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

func init() {
	logger.Init(logger.Config{Level: "error", Format: "console"})
}

// fakeGate admits bets for one fixed round
type fakeGate struct {
	roundID int64
	open    bool
}

func (g *fakeGate) CanAcceptBet(roundID int64) bool {
	return g.open && g.roundID == roundID
}

// recordingBroadcaster collects emitted events per connection
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	ConnID string
	Event  string
	Data   interface{}
}

func (b *recordingBroadcaster) Broadcast(event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Event: event, Data: data})
}

func (b *recordingBroadcaster) SendToConn(connID string, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{ConnID: connID, Event: event, Data: data})
}

func (b *recordingBroadcaster) byEvent(event string) []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedEvent
	for _, e := range b.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// in-memory repositories
type mockWagerRepo struct {
	mu      sync.Mutex
	records []*domain.WagerRecord
}

func (r *mockWagerRepo) Create(_ context.Context, record *domain.WagerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *mockWagerRepo) GetByPlayer(_ context.Context, _, _ string, _ int) ([]*domain.WagerRecord, error) {
	return nil, nil
}

func (r *mockWagerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type mockSettlementRepo struct {
	mu      sync.Mutex
	records []*domain.SettlementRecord
}

func (r *mockSettlementRepo) BatchCreate(_ context.Context, records []*domain.SettlementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	return nil
}

func (r *mockSettlementRepo) GetByPlayer(_ context.Context, _, _ string, _ int) ([]*domain.SettlementRecord, error) {
	return nil, nil
}

func (r *mockSettlementRepo) GetLastWin(_ context.Context, _, _ string) (float64, error) {
	return 0, nil
}

func (r *mockSettlementRepo) snapshot() []*domain.SettlementRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.SettlementRecord(nil), r.records...)
}

const testRoundID = int64(1700000000000)

type fixture struct {
	ledger      *usecase.BetLedger
	gate        *fakeGate
	sessions    *session.MemoryCache
	accounts    *accounts.MockService
	wagers      *mockWagerRepo
	settlements *mockSettlementRepo
	broadcaster *recordingBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gate := &fakeGate{roundID: testRoundID, open: true}
	sessions := session.NewMemoryCache()
	ledgerSvc := accounts.NewMockService()
	wagers := &mockWagerRepo{}
	settlements := &mockSettlementRepo{}
	broadcaster := &recordingBroadcaster{}

	cfg := config.GameConfig{
		GameID:           "TP2",
		MinBetAmount:     10,
		MaxBetAmount:     200000,
		MaxCashoutAmount: 500000,
	}

	return &fixture{
		ledger:      usecase.NewBetLedger(gate, sessions, ledgerSvc, wagers, settlements, broadcaster, cfg),
		gate:        gate,
		sessions:    sessions,
		accounts:    ledgerSvc,
		wagers:      wagers,
		settlements: settlements,
		broadcaster: broadcaster,
	}
}

func (f *fixture) addPlayer(t *testing.T, connID string, balance float64) {
	t.Helper()
	f.accounts.AddPlayer("tok-"+connID, accounts.PlayerDetail{
		UserID: "user-" + connID, OperatorID: "op1", Balance: balance,
	})
	err := f.sessions.Set(context.Background(), connID, &session.PlayerSession{
		UserID:     "user-" + connID,
		OperatorID: "op1",
		Token:      "tok-" + connID,
		GameID:     "TP2",
		Balance:    balance,
	})
	require.NoError(t, err)
}

func TestParseStakes(t *testing.T) {
	stakes, err := usecase.ParseStakes("1-100,5-20.50")
	require.NoError(t, err)
	require.Len(t, stakes, 2)
	assert.Equal(t, engine.Stake{BetType: 1, Amount: 100}, stakes[0])
	assert.Equal(t, engine.Stake{BetType: 5, Amount: 20.50}, stakes[1])

	for _, raw := range []string{"", "1", "1-", "-100", "x-100", "1-y", "1-100,"} {
		_, err := usecase.ParseStakes(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestPlaceBetHappyPath(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "c1", 1000)

	wager, err := f.ledger.PlaceBet(context.Background(), "c1", testRoundID, "1-100,5-50")
	require.NoError(t, err)

	assert.Equal(t, 150.0, wager.TotalAmount)
	assert.Len(t, wager.Stakes, 2)
	assert.NotEmpty(t, wager.DebitTxnID)
	assert.Equal(t, 1, f.ledger.OpenWagerCount())

	sess, err := f.sessions.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 850.0, sess.Balance)

	debits := f.accounts.Debits()
	require.Len(t, debits, 1)
	assert.Equal(t, 150.0, debits[0].Amount)
	assert.Equal(t, testRoundID, debits[0].RoundID)

	require.Eventually(t, func() bool { return f.wagers.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.NotEmpty(t, f.broadcaster.byEvent(domain.EventBet))
}

func TestPlaceBetRejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		roundID int64
		balance float64
		closed  bool
		want    error
	}{
		{"unknown session", "1-100", testRoundID, -1, false, usecase.ErrInvalidPlayer},
		{"betting closed", "1-100", testRoundID, 1000, true, usecase.ErrBettingClosed},
		{"stale round", "1-100", testRoundID + 1, 1000, false, usecase.ErrBettingClosed},
		{"malformed stakes", "banana", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"zero amount", "1-0", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"below minimum", "1-5", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"above maximum", "1-200001", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"unknown bet type", "6-100", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"both hands backed", "1-100,2-100", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"duplicate bet type", "3-100,3-100", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"too many stakes", "1-100,3-100,4-100,5-100,2-100", testRoundID, 1000, false, usecase.ErrInvalidBetAmount},
		{"insufficient balance", "1-100,5-50", testRoundID, 120, false, usecase.ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.balance >= 0 {
				f.addPlayer(t, "c1", tt.balance)
			}
			f.gate.open = !tt.closed

			_, err := f.ledger.PlaceBet(context.Background(), "c1", tt.roundID, tt.raw)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, f.ledger.OpenWagerCount())
			assert.Empty(t, f.accounts.Debits())
		})
	}
}

func TestPlaceBetDebitFailure(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "c1", 1000)
	f.accounts.FailNext = errors.New("upstream 502")

	_, err := f.ledger.PlaceBet(context.Background(), "c1", testRoundID, "1-100")
	assert.ErrorIs(t, err, usecase.ErrUpstreamCancelled)
	assert.Equal(t, 0, f.ledger.OpenWagerCount())

	// balance untouched on rejection
	sess, err := f.sessions.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, sess.Balance)
}

func TestSettleRoundPaysWinners(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "winner", 1000)
	f.addPlayer(t, "loser", 1000)

	_, err := f.ledger.PlaceBet(context.Background(), "winner", testRoundID, "1-100")
	require.NoError(t, err)
	_, err = f.ledger.PlaceBet(context.Background(), "loser", testRoundID, "2-100")
	require.NoError(t, err)

	out := outcomeAWins()
	require.NoError(t, f.ledger.SettleRound(context.Background(), testRoundID, out))

	assert.Equal(t, 0, f.ledger.OpenWagerCount())

	settlementEvents := f.broadcaster.byEvent(domain.EventSettlement)
	require.Len(t, settlementEvents, 2)
	byConn := make(map[string]domain.SettlementPayload)
	for _, e := range settlementEvents {
		byConn[e.ConnID] = e.Data.(domain.SettlementPayload)
	}
	assert.Equal(t, "WIN", byConn["winner"].Status)
	assert.Equal(t, "192.00", byConn["winner"].WinAmount)
	assert.Equal(t, "LOSS", byConn["loser"].Status)
	assert.Equal(t, "100.00", byConn["loser"].LossAmount)

	// optimistic session credit
	sess, err := f.sessions.Get(context.Background(), "winner")
	require.NoError(t, err)
	assert.Equal(t, 1092.0, sess.Balance)

	// upstream credit and persistence are asynchronous
	require.Eventually(t, func() bool { return len(f.accounts.Credits()) == 1 }, time.Second, 10*time.Millisecond)
	credits := f.accounts.Credits()
	assert.Equal(t, 192.0, credits[0].Amount)
	assert.Equal(t, "user-winner", credits[0].UserID)
	assert.NotEmpty(t, credits[0].TxnRefID)

	require.Eventually(t, func() bool { return len(f.settlements.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	for _, record := range f.settlements.snapshot() {
		assert.Equal(t, testRoundID, record.RoundID)
		assert.NotEmpty(t, record.Status)
	}
}

func TestSettleRoundEmptySet(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SettleRound(context.Background(), testRoundID, outcomeAWins()))
	assert.Empty(t, f.broadcaster.byEvent(domain.EventSettlement))
}

func TestSettleRoundDrainsOnce(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "c1", 1000)

	_, err := f.ledger.PlaceBet(context.Background(), "c1", testRoundID, "1-100")
	require.NoError(t, err)

	out := outcomeAWins()
	require.NoError(t, f.ledger.SettleRound(context.Background(), testRoundID, out))
	require.NoError(t, f.ledger.SettleRound(context.Background(), testRoundID, out))

	// the second settlement sees an empty set and pays nothing more
	assert.Len(t, f.broadcaster.byEvent(domain.EventSettlement), 1)
}

// outcomeAWins builds a deterministic outcome where Player A's pair beats
// Player B's high card and no bonus hand forms
func outcomeAWins() *engine.Outcome {
	handA := engine.Hand{
		{Rank: engine.King, Suit: engine.Spades},
		{Rank: engine.King, Suit: engine.Hearts},
		{Rank: 4, Suit: engine.Clubs},
	}
	handB := engine.Hand{
		{Rank: engine.Queen, Suit: engine.Hearts},
		{Rank: 9, Suit: engine.Diamonds},
		{Rank: 2, Suit: engine.Spades},
	}

	union := make([]engine.Card, 0, 6)
	union = append(union, handA[:]...)
	union = append(union, handB[:]...)

	return &engine.Outcome{
		HandA:  handA,
		HandB:  handB,
		EvalA:  engine.Evaluate3(handA),
		EvalB:  engine.Evaluate3(handB),
		Bonus:  engine.Evaluate6(union),
		Winner: engine.CompareHands(handA, handB),
	}
}
