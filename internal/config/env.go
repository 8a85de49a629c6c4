package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-level defaults read from the environment. Command-line
// flags override them.
type Settings struct {
	TaxYear   int    `env:"JPTAX_TAX_YEAR"`
	RulesFile string `env:"JPTAX_RULES_FILE"`
	Format    string `env:"JPTAX_FORMAT" envDefault:"console"`
	LogLevel  string `env:"JPTAX_LOG_LEVEL" envDefault:"warn"`

	// LogFile receives logs from the dashboard, which owns the terminal.
	LogFile string `env:"JPTAX_LOG_FILE"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
