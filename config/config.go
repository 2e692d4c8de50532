package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gitlab.com/minerex-platform/admin_api/featureflags"
	"gitlab.com/minerex-platform/admin_api/monitor"
	"gitlab.com/minerex-platform/admin_api/net/kafka"
)

// Config structure
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	DatabaseCluster DatabaseClusterConfig `mapstructure:"database_cluster"`
	Kafka           kafka.Config          `mapstructure:"kafka"`
	Unleash         featureflags.Config   `mapstructure:"unleash"`
	Dashboard       DashboardConfig       `mapstructure:"dashboard"`
	Crons           Crons                 `mapstructure:"crons"`
}

// ServerConfig structure
type ServerConfig struct {
	API        APIConfig      `mapstructure:"api"`
	Monitoring monitor.Config `mapstructure:"monitoring"`
	// Timezone is the deployment's fixed reference zone used to resolve
	// the "today" window and default date ranges.
	Timezone string `mapstructure:"timezone"`
}

// APIConfig structure
type APIConfig struct {
	Port           int    `mapstructure:"port"`
	KeepAlive      bool   `mapstructure:"keep_alive"`
	Domain         string `mapstructure:"domain"`
	JWTTokenSecret string `mapstructure:"jwt_token_secret"`
}

// DatabaseClusterConfig structure
type DatabaseClusterConfig struct {
	Writer      DatabaseConfig `mapstructure:"writer"`
	Reader      DatabaseConfig `mapstructure:"reader"`
	ReaderAdmin DatabaseConfig `mapstructure:"reader_admin"`
}

// DatabaseConfig structure
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLmode         string `mapstructure:"sslmode"`
	ApplicationName string `mapstructure:"application_name"`
	MigrationsPath  string `mapstructure:"migrations_path"`
}

// DashboardConfig bounds the metric fan-out.
type DashboardConfig struct {
	// MetricTimeout is the per-spec deadline in milliseconds; on expiry the
	// spec degrades to its fallback.
	MetricTimeout int `mapstructure:"metric_timeout"`
}

func (d DashboardConfig) MetricDeadline() time.Duration {
	if d.MetricTimeout <= 0 {
		return 3 * time.Second
	}
	return time.Duration(d.MetricTimeout) * time.Millisecond
}

// Crons structure
type Crons struct {
	// DashboardGauges is a cron spec for refreshing the prometheus gauges
	// mirrored from the dashboard metric table. Empty disables the job.
	DashboardGauges string `mapstructure:"dashboard_gauges"`
}

// Location resolves the reference zone, defaulting to UTC.
func (s ServerConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", s.Timezone).Msg("Unable to load reference timezone")
	}
	return loc
}

// LoadConfig godoc
func LoadConfig(viperConf *viper.Viper) Config {
	var config Config

	err := viperConf.Unmarshal(&config)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config into struct")
	}
	return config
}

// OpenConfig godoc
func OpenConfig(file string) {
	if file != "" {
		// Use config file from the flag.
		viper.SetConfigFile(file)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName(".config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath("/etc/admin_api/")
	viper.SetEnvPrefix("CFG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Unable to read config file, relying on env")
	}
}
