// Package http exposes the read-only game history API.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/usecase"
)

const defaultHistoryLimit = 20

// Handler serves round and player history over HTTP
type Handler struct {
	rounds      *usecase.RoundUseCase
	wagers      domain.WagerRepository
	settlements domain.SettlementRepository
}

// NewHandler creates a new history handler
func NewHandler(rounds *usecase.RoundUseCase, wagers domain.WagerRepository, settlements domain.SettlementRepository) *Handler {
	return &Handler{rounds: rounds, wagers: wagers, settlements: settlements}
}

// RegisterRoutes mounts the history API on the router
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/rounds", h.RecentRounds)
		api.GET("/players/:operator_id/:user_id/wagers", h.PlayerWagers)
		api.GET("/players/:operator_id/:user_id/settlements", h.PlayerSettlements)
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit <= 0 || limit > 100 {
		return defaultHistoryLimit
	}
	return limit
}

// RecentRounds returns the latest archived rounds
func (h *Handler) RecentRounds(c *gin.Context) {
	records, err := h.rounds.RecentRounds(c.Request.Context(), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "msg": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": records})
}

// PlayerWagers returns a player's recent wagers
func (h *Handler) PlayerWagers(c *gin.Context) {
	records, err := h.wagers.GetByPlayer(c.Request.Context(), c.Param("user_id"), c.Param("operator_id"), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "msg": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": records})
}

// PlayerSettlements returns a player's recent settlements
func (h *Handler) PlayerSettlements(c *gin.Context) {
	records, err := h.settlements.GetByPlayer(c.Request.Context(), c.Param("user_id"), c.Param("operator_id"), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "msg": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": records})
}
