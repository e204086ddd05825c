package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/accounts"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/gateway/usecase"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/gateway/ws"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/session"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	tpusecase "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/usecase"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

// historyOnConnect is how many archived rounds a fresh connection receives
const historyOnConnect = 20

// Handler upgrades websocket requests and seeds new connections
type Handler struct {
	useCase     *usecase.GatewayUseCase
	manager     *ws.Manager
	accountsSvc accounts.Service
	sessions    session.Cache
	rounds      *tpusecase.RoundUseCase
	settlements domain.SettlementRepository
}

// NewHandler creates a new websocket handler
func NewHandler(
	useCase *usecase.GatewayUseCase,
	manager *ws.Manager,
	accountsSvc accounts.Service,
	sessions session.Cache,
	rounds *tpusecase.RoundUseCase,
	settlements domain.SettlementRepository,
) *Handler {
	return &Handler{
		useCase:     useCase,
		manager:     manager,
		accountsSvc: accountsSvc,
		sessions:    sessions,
		rounds:      rounds,
		settlements: settlements,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // operator embeds the game cross-origin
	},
}

// HandleWebSocket authenticates and upgrades one connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WebSocketContext(r)

	token := r.URL.Query().Get("token")
	gameID := r.URL.Query().Get("game_id")
	if token == "" || gameID == "" {
		logger.Warn(ctx).Str("remote_addr", r.RemoteAddr).Msg("Handshake missing token or game_id")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	detail, err := h.accountsSvc.FetchPlayer(r.Context(), token, gameID)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Player detail lookup failed")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("WebSocket upgrade failed")
		return
	}

	connID := h.manager.NextConnID()
	if err := h.sessions.Set(r.Context(), connID, &session.PlayerSession{
		UserID:     detail.UserID,
		OperatorID: detail.OperatorID,
		Token:      token,
		GameID:     gameID,
		Balance:    detail.Balance,
		Image:      detail.Image,
	}); err != nil {
		logger.Error(ctx).Err(err).Msg("Session store failed")
		conn.Close()
		return
	}

	logger.Info(ctx).
		Str("conn_id", connID).
		Str("user_id", detail.UserID).
		Str("operator_id", detail.OperatorID).
		Msg("WebSocket connected")

	client := h.manager.Register(conn, connID)

	go client.WritePump()
	go func() {
		client.ReadPump(h.useCase.HandleMessage)

		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.sessions.Delete(cleanupCtx, connID); err != nil {
			logger.ErrorGlobal().Err(err).Str("conn_id", connID).Msg("Session cleanup failed")
		}
	}()

	h.seedConnection(ctx, connID, detail)
}

// seedConnection sends the initial info, lastWin and history events
func (h *Handler) seedConnection(ctx context.Context, connID string, detail *accounts.PlayerDetail) {
	h.manager.SendToConn(connID, domain.EventInfo, domain.InfoPayload{
		UserID:     detail.UserID,
		OperatorID: detail.OperatorID,
		Balance:    fmt.Sprintf("%.2f", detail.Balance),
	})

	lastWin, err := h.settlements.GetLastWin(ctx, detail.UserID, detail.OperatorID)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Last win lookup failed")
	}
	h.manager.SendToConn(connID, domain.EventLastWin, domain.LastWinPayload{MyWinningAmount: lastWin})

	records, err := h.rounds.RecentRounds(ctx, historyOnConnect)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("History lookup failed")
		return
	}

	history := make([]domain.HistoryPayload, 0, len(records))
	for _, record := range records {
		var result domain.ResultPayload
		if err := json.Unmarshal([]byte(record.Result), &result); err != nil {
			continue
		}
		history = append(history, domain.HistoryPayload{
			Time:       record.CreatedAt,
			RoundID:    record.RoundID,
			StartDelay: record.StartDelay,
			EndDelay:   record.EndDelay,
			Result:     result,
		})
	}
	h.manager.SendToConn(connID, domain.EventHistory, history)
}
