package config

import "time"

// GameConfig holds round timing and wager limits
type GameConfig struct {
	GameID string

	StartDelaySeconds int           // PENDING countdown ticks
	EndDelaySeconds   int           // CLOSING countdown ticks
	OpenDuration      time.Duration // betting window / calculating pause
	DealTick          time.Duration // delay between revealed cards
	ResultPause       time.Duration // pause after the result before settlement

	MinBetAmount     float64
	MaxBetAmount     float64
	MaxCashoutAmount float64
}

// LoadGameConfig loads round timing and limits from the environment
func LoadGameConfig() GameConfig {
	return GameConfig{
		GameID:            getEnv("GAME_ID", "TP2"),
		StartDelaySeconds: getEnvInt("GAME_START_DELAY", 15),
		EndDelaySeconds:   getEnvInt("GAME_END_DELAY", 5),
		OpenDuration:      getEnvDuration("GAME_OPEN_MS", 3000),
		DealTick:          getEnvDuration("GAME_DEAL_TICK_MS", 1000),
		ResultPause:       getEnvDuration("GAME_RESULT_PAUSE_MS", 2000),
		MinBetAmount:      getEnvFloat("MIN_BET_AMOUNT", 10),
		MaxBetAmount:      getEnvFloat("MAX_BET_AMOUNT", 200000),
		MaxCashoutAmount:  getEnvFloat("MAX_CASHOUT_AMOUNT", 500000),
	}
}

func getEnvDuration(key string, fallbackMillis int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMillis)) * time.Millisecond
}
