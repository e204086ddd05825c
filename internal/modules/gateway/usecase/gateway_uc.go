// Package usecase routes inbound wire messages to the game.
package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	tpusecase "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/usecase"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

// betPrefix opens every wager message: BT:<roundID>:<chip>-<amount>,...
const betPrefix = "BT"

// GatewayUseCase parses inbound frames and dispatches them
type GatewayUseCase struct {
	ledger      *tpusecase.BetLedger
	broadcaster domain.Broadcaster
}

// NewGatewayUseCase creates the inbound message router
func NewGatewayUseCase(ledger *tpusecase.BetLedger, broadcaster domain.Broadcaster) *GatewayUseCase {
	return &GatewayUseCase{ledger: ledger, broadcaster: broadcaster}
}

// HandleMessage processes one inbound frame from connID. Unknown frames are
// logged and dropped; wager rejections go back to the caller as betError.
func (uc *GatewayUseCase) HandleMessage(connID string, message []byte) {
	ctx := context.Background()
	raw := strings.TrimSpace(string(message))

	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] != betPrefix {
		logger.Warn(ctx).Str("conn_id", connID).Str("raw", raw).Msg("Unknown inbound frame")
		return
	}

	roundID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		uc.rejectBet(connID, tpusecase.ErrInvalidBetAmount)
		return
	}

	if _, err := uc.ledger.PlaceBet(ctx, connID, roundID, parts[2]); err != nil {
		uc.rejectBet(connID, err)
	}
}

func (uc *GatewayUseCase) rejectBet(connID string, err error) {
	uc.broadcaster.SendToConn(connID, domain.EventBetError, domain.BetErrorPayload{
		Message: err.Error(),
		Status:  false,
	})
}
