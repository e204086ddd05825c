package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Register pprof handlers
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/accounts"
	gatewayHttp "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/gateway/adapter/http"
	gatewayUseCase "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/gateway/usecase"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/gateway/ws"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/session"
	gameHttp "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/adapter/http"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/domain"
	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/machine"
	gameRepo "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/repository/db"
	gameUseCase "github.com/cloudstok/teen-patti-2.0-backend/internal/modules/teenpatti/usecase"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

func main() {
	pprofPort := flag.String("pprof-port", "", "Port to run pprof server on (e.g., 6060)")
	background := flag.Bool("d", false, "Run in background mode (disable console logging)")
	flag.Parse()

	// If background is true, disable console logging
	logger.InitWithFile("logs/teenpatti/server.log", "info", "json", !*background)
	defer logger.Flush()

	if *pprofPort != "" {
		go func() {
			addr := "localhost:" + *pprofPort
			logger.InfoGlobal().Str("addr", addr).Msg("Starting pprof server")
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.ErrorGlobal().Err(err).Msg("Failed to start pprof server")
			}
		}()
	}

	fmt.Println("Starting Teen Patti server... Logs are being written to logs/teenpatti/server.log (rotating)")
	logger.InfoGlobal().Msg("Starting Teen Patti server...")

	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Infrastructure
	dbConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)

	db, err := gorm.Open(postgres.Open(dbConnStr), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to get database instance")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to ping database")
	}

	if err := db.AutoMigrate(&domain.RoundRecord{}, &domain.WagerRecord{}, &domain.SettlementRecord{}); err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to migrate schema")
	}
	logger.InfoGlobal().Msg("Database connected")

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
	})
	defer rdb.Close()
	logger.InfoGlobal().Msg("Redis connected")

	cashout, err := accounts.NewCashoutPublisher(cfg.AMQP)
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to connect to AMQP broker")
	}
	defer cashout.Close()
	logger.InfoGlobal().Str("queue", cfg.AMQP.CashoutQueue).Msg("Cashout queue ready")

	// 3. Initialize Modules
	accountsSvc := accounts.NewService(cfg.Accounts, cashout)
	sessions := session.NewRedisCache(rdb, cfg.Gateway.SessionTTL)

	wsManager, err := ws.NewManager(cfg.Gateway)
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to create connection manager")
	}
	go wsManager.Run()

	roundRepo := gameRepo.NewRoundRepository(db)
	wagerRepo := gameRepo.NewWagerRepository(db)
	settlementRepo := gameRepo.NewSettlementRepository(db)

	stateMachine := machine.NewStateMachine(cfg.Game)
	roundUC := gameUseCase.NewRoundUseCase(stateMachine, roundRepo, wsManager, cfg.Game.GameID)
	betLedger := gameUseCase.NewBetLedger(stateMachine, sessions, accountsSvc, wagerRepo, settlementRepo, wsManager, cfg.Game)
	stateMachine.SetSettler(betLedger)
	logger.InfoGlobal().Msg("Game modules initialized")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stateMachine.Start(context.Background())
	}()
	logger.InfoGlobal().Msg("Round scheduler started")

	gatewayUC := gatewayUseCase.NewGatewayUseCase(betLedger, wsManager)
	gatewayHandler := gatewayHttp.NewHandler(gatewayUC, wsManager, accountsSvc, sessions, roundUC, settlementRepo)

	// 4. Setup HTTP Servers

	// WebSocket server
	wsRouter := gin.New()
	wsRouter.Use(gin.Recovery())
	wsRouter.Use(logger.GinMiddleware())
	wsRouter.GET("/ws", func(c *gin.Context) {
		gatewayHandler.HandleWebSocket(c.Writer, c.Request)
	})

	// History REST API server
	apiRouter := gin.New()
	apiRouter.Use(gin.Recovery())
	apiRouter.Use(logger.GinMiddleware())
	gameHttp.NewHandler(roundUC, wagerRepo, settlementRepo).RegisterRoutes(apiRouter)

	wsSrv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: wsRouter}
	apiSrv := &http.Server{Addr: ":" + cfg.Server.HTTPPort, Handler: apiRouter}

	logger.InfoGlobal().
		Str("ws_port", cfg.Server.Port).
		Str("api_port", cfg.Server.HTTPPort).
		Str("ws_url", fmt.Sprintf("ws://localhost:%s/ws?token=YOUR_TOKEN&game_id=%s", cfg.Server.Port, cfg.Game.GameID)).
		Msg("Teen Patti server running")

	go func() {
		if err := wsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("WebSocket server failed")
		}
	}()

	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("API server failed")
		}
	}()

	// 5. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoGlobal().Msg("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := wsSrv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("WebSocket server forced to shutdown")
	}
	if err := apiSrv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("API server forced to shutdown")
	}

	// wait for the current round to finish so open wagers settle
	logger.InfoGlobal().Msg("Waiting for current round to finish...")
	stateMachine.Stop()
	wg.Wait()

	logger.InfoGlobal().Msg("Closing all WebSocket connections...")
	wsManager.Shutdown()

	logger.InfoGlobal().Msg("Server exited properly")
}
