package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/machine"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

// RoundUseCase turns scheduler events into wire broadcasts and archives
// each finished round.
type RoundUseCase struct {
	rounds      domain.RoundRepository
	broadcaster domain.Broadcaster
	gameID      string
}

// NewRoundUseCase creates the round use case and subscribes it to the
// scheduler
func NewRoundUseCase(sm *machine.StateMachine, rounds domain.RoundRepository, broadcaster domain.Broadcaster, gameID string) *RoundUseCase {
	uc := &RoundUseCase{
		rounds:      rounds,
		broadcaster: broadcaster,
		gameID:      gameID,
	}
	sm.RegisterEventHandler(uc.handleEvent)
	return uc
}

// handleEvent dispatches one scheduler event. The cards channel carries the
// compact "roundID:tick:tag" wire form consumed by game clients.
func (uc *RoundUseCase) handleEvent(event machine.GameEvent) {
	switch event.Type {
	case machine.EventStartingTick:
		uc.broadcaster.Broadcast(domain.EventCards, fmt.Sprintf("%d:%d:STARTING", event.RoundID, event.Tick))

	case machine.EventCalculating:
		uc.broadcaster.Broadcast(domain.EventCards, fmt.Sprintf("%d:0:CALCULATING", event.RoundID))

	case machine.EventDealCard:
		uc.broadcaster.Broadcast(domain.EventCards, fmt.Sprintf("%d:%s%d:%s",
			event.RoundID, event.Deal.Hand, event.Deal.Index, event.Deal.Card))

	case machine.EventResult:
		uc.broadcaster.Broadcast(domain.EventResult, domain.NewResultPayload(event.RoundID, event.Outcome))

	case machine.EventEndedTick:
		uc.broadcaster.Broadcast(domain.EventCards, fmt.Sprintf("%d:%d:ENDED", event.RoundID, event.Tick))

	case machine.EventRoundClosed:
		uc.archiveRound(event)
	}
}

// archiveRound persists the finished round and broadcasts its history entry
func (uc *RoundUseCase) archiveRound(event machine.GameEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := domain.NewResultPayload(event.RoundID, event.Outcome)
	resultJSON, _ := json.Marshal(result)

	record := &domain.RoundRecord{
		RoundID:    event.RoundID,
		GameID:     uc.gameID,
		StartDelay: event.Round.StartDelay,
		EndDelay:   event.Round.EndDelay,
		Result:     string(resultJSON),
		CreatedAt:  event.Round.StartTime,
	}
	if err := uc.rounds.Create(ctx, record); err != nil {
		logger.Error(ctx).Err(err).Int64("round_id", event.RoundID).Msg("Round archive failed")
	}

	uc.broadcaster.Broadcast(domain.EventHistory, domain.HistoryPayload{
		Time:       event.Round.StartTime,
		RoundID:    event.RoundID,
		StartDelay: event.Round.StartDelay,
		EndDelay:   event.Round.EndDelay,
		Result:     result,
	})
}

// RecentRounds returns the latest archived rounds, newest first
func (uc *RoundUseCase) RecentRounds(ctx context.Context, limit int) ([]*domain.RoundRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.rounds.GetRecent(ctx, limit)
}
