package gateway

import (
	"fmt"
	"time"

	"github.com/enioarz/ontology-server/errors"
)

// Config holds configuration for the preview gateway
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr"`

	// EnableCORS enables CORS headers (requires explicit cors_origins)
	EnableCORS bool `json:"enable_cors"`

	// CORSOrigins lists allowed CORS origins. ["*"] is for development only.
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// RebuildTimeoutStr bounds one rebuild (default: "2m")
	RebuildTimeoutStr string `json:"rebuild_timeout,omitempty"`

	rebuildTimeout time.Duration
}

// Validate ensures the gateway configuration is valid
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"addr cannot be empty")
	}

	if c.RebuildTimeoutStr == "" {
		c.rebuildTimeout = 2 * time.Minute
	} else {
		parsed, err := time.ParseDuration(c.RebuildTimeoutStr)
		if err != nil {
			return errors.WrapInvalid(err, "Config", "Validate",
				fmt.Sprintf("invalid rebuild_timeout format: %s", c.RebuildTimeoutStr))
		}
		c.rebuildTimeout = parsed
	}
	if c.rebuildTimeout < time.Second || c.rebuildTimeout > time.Hour {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"rebuild_timeout must be between 1s and 1h")
	}

	if c.EnableCORS && len(c.CORSOrigins) == 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"enable_cors requires explicit cors_origins configuration (use [\"*\"] for development only)")
	}

	return nil
}

// RebuildTimeout returns the parsed rebuild timeout. Valid after Validate.
func (c *Config) RebuildTimeout() time.Duration {
	return c.rebuildTimeout
}

// DefaultConfig returns default gateway configuration
func DefaultConfig() Config {
	return Config{
		Addr:              "127.0.0.1:8080",
		EnableCORS:        false,
		CORSOrigins:       []string{},
		RebuildTimeoutStr: "2m",
	}
}
