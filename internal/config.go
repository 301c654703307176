package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host                   string        `env:"HOST,default=localhost"`
	Port                   int           `env:"PORT,default=8080"`
	GrpcPort               int           `env:"GRPC_PORT,default=9090"`
	DebugPort              int           `env:"DEBUG_PORT,default=8081"`
	LogLevel               string        `env:"LOG_LEVEL,default=INFO"`
	NotificationBufferSize int           `env:"NOTIFICATION_BUFFER_SIZE,required=true"`
	SinkTimeout            time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval        time.Duration `env:"RESTART_INTERVAL,required=true"`
	StatsInterval          time.Duration `env:"STATS_INTERVAL,default=30s"`
	ShutdownTimeout        time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	LimitTransfers         *int          `env:"LIMIT_TRANSFERS"`
	// Leave AUTH_SECRET empty to serve the accounts without authentication
	AuthSecret           string        `env:"AUTH_SECRET"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=1h"`
	OperatorName         string        `env:"OPERATOR_NAME,default=operator"`
	OperatorPasswordHash string        `env:"OPERATOR_PASSWORD_HASH"`
}

// Validate rejects values the environment parser accepts but the ledger can't run with.
func (c Config) Validate() error {
	if c.NotificationBufferSize <= 0 {
		return fmt.Errorf("NOTIFICATION_BUFFER_SIZE must be positive, got %d", c.NotificationBufferSize)
	}
	if c.SinkTimeout <= 0 || c.RestartInterval <= 0 || c.StatsInterval <= 0 {
		return fmt.Errorf("SINK_TIMEOUT, RESTART_INTERVAL and STATS_INTERVAL must be positive")
	}
	if c.LimitTransfers != nil && *c.LimitTransfers <= 0 {
		return fmt.Errorf("LIMIT_TRANSFERS must be positive, got %d", *c.LimitTransfers)
	}
	if c.AuthEnabled() {
		if len(c.AuthSecret) < 32 {
			return fmt.Errorf("AUTH_SECRET must be at least 32 characters long")
		}
		if c.OperatorPasswordHash == "" {
			return fmt.Errorf("OPERATOR_PASSWORD_HASH is required when AUTH_SECRET is set")
		}
		if c.AuthTokenDuration <= 0 {
			return fmt.Errorf("AUTH_TOKEN_DURATION must be positive")
		}
	}
	return nil
}

func (c Config) AuthEnabled() bool { return c.AuthSecret != "" }

func (c Config) HTTPAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }
func (c Config) GrpcAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.GrpcPort) }
