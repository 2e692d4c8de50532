package featureflags

import (
	"github.com/Unleash/unleash-client-go/v3"
)

// Config structure
type Config struct {
	Enabled     bool   `mapstructure:"enabled"`
	AppName     string `mapstructure:"app_name"`
	URL         string `mapstructure:"url"`
	InstanceID  string `mapstructure:"instance_id"`
	Environment string `mapstructure:"environment"`
}

var enabled bool

// Initialize connects the unleash client. With the integration disabled
// every flag falls back to its default.
func Initialize(cfg Config) error {
	if !cfg.Enabled {
		return nil
	}
	err := unleash.Initialize(
		unleash.WithAppName(cfg.AppName),
		unleash.WithUrl(cfg.URL),
		unleash.WithInstanceId(cfg.InstanceID),
		unleash.WithEnvironment(cfg.Environment),
	)
	if err != nil {
		return err
	}
	enabled = true
	return nil
}

// IsEnabled checks a flag, defaulting to off when unleash is not wired.
func IsEnabled(feature string) bool {
	if !enabled {
		return false
	}
	return unleash.IsEnabled(feature)
}

// IsEnabledOrDefault checks a flag with an explicit fallback.
func IsEnabledOrDefault(feature string, def bool) bool {
	if !enabled {
		return def
	}
	return unleash.IsEnabled(feature, unleash.WithFallback(def))
}
