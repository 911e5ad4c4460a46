// Package settings holds the runtime configuration of the edge functions.
//
// Lambda@Edge functions cannot carry environment variables, so every field has a
// default that is a complete production configuration. Environment variables only
// override the defaults for local runs and the replay tool.
package settings

import (
	"fmt"
	"path"
	"time"

	"github.com/caarlos0/env/v11"

	"portfolio/lib/constants"
)

type Settings struct {
	Stage              string        `env:"STAGE" envDefault:"prod"`
	PrimaryRegion      string        `env:"PRIMARY_REGION" envDefault:"us-west-2"`
	DistributionRegion string        `env:"AWS_REGION" envDefault:"us-east-1"`
	ParameterPrefix    string        `env:"PARAMETER_PREFIX" envDefault:"/portfolio"`
	VisitorQueryParam  string        `env:"VISITOR_QUERY_PARAM" envDefault:"visitor"`
	UsernameDomain     string        `env:"USERNAME_DOMAIN" envDefault:"visitor.invalid"`
	ConfigTimeout      time.Duration `env:"CONFIG_TIMEOUT" envDefault:"1500ms"`
	LinkTimeout        time.Duration `env:"LINK_TIMEOUT" envDefault:"1000ms"`
	ExchangeTimeout    time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"2000ms"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"warn"`
	IsLocal            bool          `env:"IS_LOCAL" envDefault:"false"`
	LocalEndpoint      string        `env:"LOCAL_ENDPOINT" envDefault:"http://localhost:4566"`
}

// Load parses Settings from the process environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("error parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings that would make every invocation fail.
func (s Settings) Validate() error {
	switch {
	case s.Stage == "":
		return fmt.Errorf("stage cannot be empty")
	case s.PrimaryRegion == "" || s.DistributionRegion == "":
		return fmt.Errorf("primary and distribution regions are required")
	case s.VisitorQueryParam == "":
		return fmt.Errorf("visitor query parameter cannot be empty")
	case s.ConfigTimeout <= 0 || s.LinkTimeout <= 0 || s.ExchangeTimeout <= 0:
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// ParameterName returns the full SSM name for a parameter suffix.
func (s Settings) ParameterName(suffix string) string {
	return path.Join(s.ParameterPrefix, s.Stage, suffix)
}

func (s Settings) UserPoolIDParameter() string {
	return s.ParameterName(constants.COGNITO_USER_POOL_ID)
}

func (s Settings) ClientIDParameter() string {
	return s.ParameterName(constants.COGNITO_CLIENT_ID)
}

func (s Settings) LinkTableParameter() string {
	return s.ParameterName(constants.VISITOR_LINK_TABLE)
}
