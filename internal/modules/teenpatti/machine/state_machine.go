// Package machine drives the round lifecycle: a single authoritative state
// machine cycling PENDING -> OPEN -> DEALING -> CLOSING forever.
package machine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/engine"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

// EventType classifies state machine events
type EventType int

const (
	EventStartingTick EventType = iota // PENDING countdown tick
	EventCalculating                   // betting window opened
	EventDealCard                      // one card revealed
	EventResult                        // full outcome revealed
	EventEndedTick                     // CLOSING countdown tick
	EventRoundClosed                   // round archived, history available
	EventMachineStopped
)

// DealData is the payload of an EventDealCard event
type DealData struct {
	Hand  string // "A" or "B"
	Index int    // 0..2
	Card  string // wire form, e.g. "A-S"
}

// GameEvent is emitted on every observable state change
type GameEvent struct {
	Type    EventType
	RoundID int64
	Tick    int
	Outcome *engine.Outcome
	Deal    DealData
	Round   *domain.Round
}

// EventHandler handles game events
type EventHandler func(event GameEvent)

// Settler settles every open wager against the revealed outcome. It is
// invoked synchronously between the result broadcast and CLOSING, while the
// phase gate guarantees no new wager can join the drained set.
type Settler interface {
	SettleRound(ctx context.Context, roundID int64, out *engine.Outcome) error
}

// RoundView is a read-only snapshot of the current round
type RoundView struct {
	RoundID int64
	Phase   domain.Phase
}

// StateMachine owns the current round and is its only writer
type StateMachine struct {
	mu           sync.RWMutex
	currentRound *domain.Round
	lastRoundID  int64

	eventHandlers []EventHandler
	settler       Settler
	rnd           *rand.Rand

	StartDelay   int           // PENDING countdown ticks
	EndDelay     int           // CLOSING countdown ticks
	TickInterval time.Duration // countdown tick length
	OpenDuration time.Duration // betting window / calculating pause
	DealTick     time.Duration // delay between revealed card pairs
	ResultPause  time.Duration // pause between result broadcast and settlement

	stopping bool
}

// NewStateMachine creates a state machine with the configured timings
func NewStateMachine(cfg config.GameConfig) *StateMachine {
	return &StateMachine{
		eventHandlers: make([]EventHandler, 0),
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
		StartDelay:    cfg.StartDelaySeconds,
		EndDelay:      cfg.EndDelaySeconds,
		TickInterval:  time.Second,
		OpenDuration:  cfg.OpenDuration,
		DealTick:      cfg.DealTick,
		ResultPause:   cfg.ResultPause,
	}
}

// RegisterEventHandler registers an event handler
func (sm *StateMachine) RegisterEventHandler(handler EventHandler) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.eventHandlers = append(sm.eventHandlers, handler)
}

// SetSettler wires the settlement hook (set once at bootstrap)
func (sm *StateMachine) SetSettler(settler Settler) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settler = settler
}

// emitEvent emits an event to all handlers
func (sm *StateMachine) emitEvent(event GameEvent) {
	sm.mu.RLock()
	handlers := make([]EventHandler, len(sm.eventHandlers))
	copy(handlers, sm.eventHandlers)
	sm.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
}

// Stop signals the state machine to stop after the current round
func (sm *StateMachine) Stop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stopping = true
}

// Start runs the round loop until stopped. Each iteration is isolated: a
// panic inside one round is recovered and the loop continues with a fresh
// round.
func (sm *StateMachine) Start(ctx context.Context) {
	logger.Info(ctx).Msg("Round scheduler started")
	for {
		sm.mu.RLock()
		stopping := sm.stopping
		sm.mu.RUnlock()

		if stopping {
			logger.Info(ctx).Msg("Round scheduler stopping")
			sm.emitEvent(GameEvent{Type: EventMachineStopped})
			return
		}

		sm.runRound(ctx)
	}
}

// runRound executes a single round
func (sm *StateMachine) runRound(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx).Interface("panic", r).Msg("Round aborted by panic")
		}
	}()

	sm.mu.Lock()
	roundID := sm.generateRoundID()
	round := domain.NewRound(roundID, sm.StartDelay, sm.EndDelay)
	sm.currentRound = round
	sm.mu.Unlock()

	ctx = logger.WithFields(ctx, map[string]interface{}{"round_id": roundID})
	logger.Info(ctx).Msg("Round started")

	//--------------------------------------------
	// PENDING: start-delay countdown, no bets
	//--------------------------------------------
	for x := sm.StartDelay; x >= 0; x-- {
		sm.emitEvent(GameEvent{Type: EventStartingTick, RoundID: roundID, Tick: x})
		time.Sleep(sm.TickInterval)
	}

	//--------------------------------------------
	// OPEN: bets admitted; outcome drawn but hidden
	//--------------------------------------------
	outcome := engine.Deal(sm.rnd)

	sm.mu.Lock()
	round.Phase = domain.PhaseOpen
	round.Outcome = outcome
	sm.mu.Unlock()

	logger.Info(ctx).
		Dur("open_duration", sm.OpenDuration).
		Msg("Betting open")

	sm.emitEvent(GameEvent{Type: EventCalculating, RoundID: roundID})
	time.Sleep(sm.OpenDuration)

	//--------------------------------------------
	// DEALING: reveal one card per hand per tick, A then B
	//--------------------------------------------
	sm.mu.Lock()
	round.Phase = domain.PhaseDealing
	sm.mu.Unlock()

	for i := 0; i < 3; i++ {
		sm.emitEvent(GameEvent{Type: EventDealCard, RoundID: roundID, Deal: DealData{
			Hand: "A", Index: i, Card: outcome.HandA[i].String(),
		}})
		sm.emitEvent(GameEvent{Type: EventDealCard, RoundID: roundID, Deal: DealData{
			Hand: "B", Index: i, Card: outcome.HandB[i].String(),
		}})
		time.Sleep(sm.DealTick)
	}

	logger.Info(ctx).
		Str("hand_a", outcome.EvalA.Type.String()).
		Str("hand_b", outcome.EvalB.Type.String()).
		Str("bonus", outcome.Bonus.Type.String()).
		Str("winner", outcome.Winner.String()).
		Msg("Round result")

	sm.emitEvent(GameEvent{Type: EventResult, RoundID: roundID, Outcome: outcome})
	time.Sleep(sm.ResultPause)

	sm.mu.RLock()
	settler := sm.settler
	sm.mu.RUnlock()

	if settler != nil {
		if err := settler.SettleRound(ctx, roundID, outcome); err != nil {
			logger.Error(ctx).Err(err).Msg("Settlement failed")
		}
	}

	//--------------------------------------------
	// CLOSING: end-delay countdown, archive, restart
	//--------------------------------------------
	sm.mu.Lock()
	round.Phase = domain.PhaseClosing
	sm.mu.Unlock()

	for z := 1; z <= sm.EndDelay; z++ {
		sm.emitEvent(GameEvent{Type: EventEndedTick, RoundID: roundID, Tick: z})
		time.Sleep(sm.TickInterval)
	}

	sm.emitEvent(GameEvent{Type: EventRoundClosed, RoundID: roundID, Outcome: outcome, Round: round})
	logger.Info(ctx).Msg("Round ended")
}

// generateRoundID derives a monotonic round ID from the clock. Called with
// sm.mu held.
func (sm *StateMachine) generateRoundID() int64 {
	id := time.Now().UnixMilli()
	if id <= sm.lastRoundID {
		id = sm.lastRoundID + 1
	}
	sm.lastRoundID = id
	return id
}

// CurrentRound returns a snapshot of the current round (thread-safe). The
// outcome is deliberately not exposed: it exists during OPEN but is secret
// until DEALING.
func (sm *StateMachine) CurrentRound() RoundView {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.currentRound == nil {
		return RoundView{}
	}
	return RoundView{
		RoundID: sm.currentRound.RoundID,
		Phase:   sm.currentRound.Phase,
	}
}

// CanAcceptBet checks whether a wager referencing roundID is admissible now
func (sm *StateMachine) CanAcceptBet(roundID int64) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.currentRound == nil {
		return false
	}
	return sm.currentRound.CanAcceptBet(roundID)
}
