package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/attt/sohbet/internal/errors"
)

// Env holds settings read from the environment (and an optional .env file).
type Env struct {
	APIURL         string        `env:"SOHBET_API_URL" envDefault:"http://localhost:8080"`
	SendTimeout    time.Duration `env:"SOHBET_SEND_TIMEOUT" envDefault:"30s"`
	SessionTimeout time.Duration `env:"SOHBET_SESSION_TIMEOUT" envDefault:"10s"`
	HealthTimeout  time.Duration `env:"SOHBET_HEALTH_TIMEOUT" envDefault:"5s"`
	MockFallback   bool          `env:"SOHBET_MOCK_FALLBACK" envDefault:"true"`
	MockMinDelay   time.Duration `env:"SOHBET_MOCK_MIN_DELAY" envDefault:"1s"`
	MockMaxDelay   time.Duration `env:"SOHBET_MOCK_MAX_DELAY" envDefault:"3s"`
	UserID         string        `env:"SOHBET_USER_ID" envDefault:"local-user"`
	LogPath        string        `env:"SOHBET_LOG_PATH" envDefault:"/tmp/sohbet-debug.log"`
}

// LoadEnv loads .env files (missing files are fine) and parses the environment.
func LoadEnv(files ...string) (*Env, error) {
	_ = godotenv.Load(files...)

	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, errors.E(errors.Op("config.LoadEnv"), errors.KindConfig, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Validate checks the parsed values.
func (e *Env) Validate() error {
	u, err := url.Parse(e.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid("SOHBET_API_URL must be an absolute URL, got " + e.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid("SOHBET_API_URL must use http or https")
	}
	if e.SendTimeout <= 0 || e.SessionTimeout <= 0 || e.HealthTimeout <= 0 {
		return errors.ConfigInvalid("timeouts must be positive")
	}
	if e.MockMinDelay < 0 || e.MockMaxDelay < e.MockMinDelay {
		return errors.ConfigInvalid("mock delay range is invalid")
	}
	if e.UserID == "" {
		return errors.ConfigInvalid("SOHBET_USER_ID must not be empty")
	}
	return nil
}
