package config

import "time"

// GatewayConfig holds WebSocket tuning
type GatewayConfig struct {
	PingInterval   time.Duration
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	SessionTTL     time.Duration
}

// LoadGatewayConfig loads WebSocket settings
func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		PingInterval:   54 * time.Second,
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		MaxMessageSize: 4096,
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_SECONDS", 3600)) * time.Second,
	}
}
