package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks field constraints (struct tags) and the cross-field
// relations the tags cannot express.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.Struct(cfg); err != nil {
		return err
	}

	if cfg.Retry.MaxDelay < cfg.Retry.BaseDelay {
		return fmt.Errorf("retry max delay %s must be >= base delay %s",
			cfg.Retry.MaxDelay, cfg.Retry.BaseDelay)
	}

	if (cfg.Auth.Username == "") != (cfg.Auth.Password == "") {
		return fmt.Errorf("auth username and password must be set together")
	}

	return nil
}
