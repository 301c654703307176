package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// LEDGER_ADDR is the base URL of a running ledger; the suite is skipped without it
	LedgerAddr string        `envconfig:"LEDGER_ADDR"`
	Timeout    time.Duration `envconfig:"E2E_TIMEOUT" default:"5s"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// Credentials are only needed when the ledger runs with AUTH_SECRET
	Operator string `envconfig:"LEDGER_OPERATOR"`
	Password string `envconfig:"LEDGER_PASSWORD"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
