package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// applyEnv overrides every `env` tagged field whose variable is set.
// Unset variables leave the YAML or default value in place.
func applyEnv(config *Config) error {
	err := envdecode.Decode(config)
	if err == nil || errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil
	}
	return fmt.Errorf("failed to load from environment: %w", err)
}
