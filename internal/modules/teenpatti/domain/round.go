package domain

import (
	"time"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/engine"
)

// Phase is the round lifecycle phase. It is the single source of truth
// gating bet admission: only OPEN accepts wagers.
type Phase int

const (
	PhasePending Phase = 0
	PhaseOpen    Phase = 1
	PhaseDealing Phase = 2
	PhaseClosing Phase = 3
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseOpen:
		return "open"
	case PhaseDealing:
		return "dealing"
	case PhaseClosing:
		return "closing"
	}
	return "unknown"
}

// Round is the live round owned by the scheduler. Phase and Outcome are
// mutated only by the scheduler; everyone else reads snapshots.
type Round struct {
	RoundID    int64
	Phase      Phase
	StartDelay int // PENDING countdown seconds
	EndDelay   int // CLOSING countdown seconds
	StartTime  time.Time
	Outcome    *engine.Outcome // nil until dealt
}

// NewRound creates a fresh round in PENDING
func NewRound(roundID int64, startDelay, endDelay int) *Round {
	return &Round{
		RoundID:    roundID,
		Phase:      PhasePending,
		StartDelay: startDelay,
		EndDelay:   endDelay,
		StartTime:  time.Now(),
	}
}

// CanAcceptBet reports whether a wager referencing roundID is admissible now
func (r *Round) CanAcceptBet(roundID int64) bool {
	return r.Phase == PhaseOpen && r.RoundID == roundID
}
