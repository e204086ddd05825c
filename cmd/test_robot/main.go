package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

// Config holds the robot configuration
type Config struct {
	Host      string
	GameID    string
	UserCount int
	BetMin    int
	BetMax    int
}

// Robot represents a simulated player
type Robot struct {
	ID     int
	Config Config
	Token  string
	Conn   *websocket.Conn
	Done   chan struct{}
	ctx    context.Context
}

// Envelope mirrors the outbound wire frame
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func main() {
	host := flag.String("host", "localhost:4200", "Server host address")
	gameID := flag.String("game", "TP2", "Game identifier")
	users := flag.Int("users", 500, "Number of concurrent users")
	flag.Parse()

	config := Config{
		Host:      *host,
		GameID:    *gameID,
		UserCount: *users,
		BetMin:    10,
		BetMax:    100,
	}

	logger.Init(logger.Config{
		Level:  "info",
		Format: "console",
	})

	ctx := context.Background()
	logger.Info(ctx).
		Int("users", config.UserCount).
		Str("host", config.Host).
		Msg("Starting Test Robot")

	var wg sync.WaitGroup
	wg.Add(config.UserCount)

	for i := 0; i < config.UserCount; i++ {
		time.Sleep(20 * time.Millisecond)
		go func(id int) {
			defer wg.Done()
			robot := NewRobot(id, config)
			if err := robot.Run(); err != nil {
				logger.Error(ctx).Int("robot_id", id).Err(err).Msg("Robot failed")
			}
		}(i + 1)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	logger.Info(ctx).Msg("Stopping robots...")
}

func NewRobot(id int, config Config) *Robot {
	return &Robot{
		ID:     id,
		Config: config,
		Token:  fmt.Sprintf("robot_%d_%d", time.Now().Unix(), id),
		Done:   make(chan struct{}),
		ctx:    context.Background(),
	}
}

func (r *Robot) Run() error {
	if err := r.ConnectWS(); err != nil {
		return fmt.Errorf("websocket connect failed: %w", err)
	}
	defer r.Conn.Close()
	logger.Info(r.ctx).Int("robot_id", r.ID).Msg("Robot connected to WebSocket")

	go r.ListenLoop()

	<-r.Done
	return nil
}

func (r *Robot) ConnectWS() error {
	u := url.URL{
		Scheme:   "ws",
		Host:     r.Config.Host,
		Path:     "/ws",
		RawQuery: "token=" + r.Token + "&game_id=" + r.Config.GameID,
	}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}
	r.Conn = c
	return nil
}

func (r *Robot) ListenLoop() {
	defer close(r.Done)

	for {
		_, message, err := r.Conn.ReadMessage()
		if err != nil {
			logger.Error(r.ctx).Int("robot_id", r.ID).Err(err).Msg("Read error")
			return
		}

		var event Envelope
		if err := json.Unmarshal(message, &event); err != nil {
			logger.Warn(r.ctx).Int("robot_id", r.ID).Err(err).Msg("Failed to parse message")
			continue
		}

		switch event.Event {
		case "cards":
			var frame string
			if err := json.Unmarshal(event.Data, &frame); err != nil {
				continue
			}
			// betting opens on the CALCULATING frame "roundID:0:CALCULATING"
			parts := strings.Split(frame, ":")
			if len(parts) == 3 && parts[2] == "CALCULATING" {
				if roundID, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
					go r.PlaceBet(roundID)
				}
			}

		case "result":
			logger.Info(r.ctx).Int("robot_id", r.ID).Str("result", string(event.Data)).Msg("Saw result")

		case "settlement":
			logger.Info(r.ctx).Int("robot_id", r.ID).Str("data", string(event.Data)).Msg("Received settlement")

		case "betError":
			logger.Warn(r.ctx).Int("robot_id", r.ID).Str("data", string(event.Data)).Msg("Bet rejected")
		}
	}
}

func (r *Robot) PlaceBet(roundID int64) {
	// Spread bets across the open window to avoid synchronized spikes
	time.Sleep(time.Duration(rand.Intn(2000)) * time.Millisecond)

	betType := rand.Intn(5) + 1
	span := r.Config.BetMax - r.Config.BetMin
	amount := r.Config.BetMin + rand.Intn(span/10+1)*10

	frame := fmt.Sprintf("BT:%d:%d-%d", roundID, betType, amount)
	if err := r.Conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		logger.Error(r.ctx).Int("robot_id", r.ID).Err(err).Msg("Failed to place bet")
		return
	}

	logger.Info(r.ctx).
		Int("robot_id", r.ID).
		Int("bet_type", betType).
		Int("amount", amount).
		Int64("round_id", roundID).
		Msg("Placed bet")
}
