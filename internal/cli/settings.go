// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"fmt"

	cenv "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment variable read into [Settings].
const EnvPrefix = "BOOTENV_"

// Settings configures a bootenv invocation. Environment variables provide
// the defaults and command line flags override them.
type Settings struct {
	ConfigFile   string `env:"CONFIG_FILE"`
	MergePolicy  string `env:"MERGE_POLICY" envDefault:"carry" validate:"oneof=carry discard partial"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Trace        string `env:"TRACE" envDefault:"none" validate:"oneof=none stdout otlp"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" validate:"required_if=Trace otlp"`
	Strict       bool   `env:"STRICT"`
}

// InvalidSettingsError wraps a validation failure.
type InvalidSettingsError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidSettingsError) Error() string {
	return fmt.Sprintf("invalid settings: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidSettingsError) Unwrap() error {
	return e.Cause
}

// LoadSettings reads [Settings] from the given environment variables.
func LoadSettings(environ map[string]string) (Settings, error) {
	var s Settings
	err := cenv.ParseWithOptions(&s, cenv.Options{
		Environment: environ,
		Prefix:      EnvPrefix,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings from environment: %w", err)
	}
	return s, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings after flags have been applied.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err != nil {
		return InvalidSettingsError{Cause: err}
	}
	return nil
}
