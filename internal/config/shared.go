package config

import "time"

// --- Shared Configs ---

type ServerConfig struct {
	Port     string // WebSocket/HTTP port
	HTTPPort string // REST API port (history endpoints)
	Name     string
	LogLevel string // debug, info, warn, error
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type AMQPConfig struct {
	URL          string
	CashoutQueue string
}

// AccountsConfig points at the external operator account system.
type AccountsConfig struct {
	BaseURL string
	Timeout time.Duration
}
