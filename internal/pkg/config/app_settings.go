package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	Port        string `mapstructure:"port" validate:"required"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// AuthSettings holds JWT authentication configuration.
type AuthSettings struct {
	JWTSecret     string `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" validate:"required,min=1,max=168"`
}

// SchedulerSettings holds cron expressions and enable flags for the
// background rotation and threat jobs.
type SchedulerSettings struct {
	Enabled                bool   `mapstructure:"enabled"`
	RotationScanFrequency  string `mapstructure:"rotation_scan_frequency"`
	ThreatScanFrequency    string `mapstructure:"threat_scan_frequency"`
	ThreatMonitorFrequency string `mapstructure:"threat_monitor_frequency"`
}

// Validate checks that all fields in SchedulerSettings are valid
func (s *SchedulerSettings) Validate() error {
	if !s.Enabled {
		return nil
	}
	if s.RotationScanFrequency == "" || s.ThreatScanFrequency == "" || s.ThreatMonitorFrequency == "" {
		return fmt.Errorf("all scheduler frequencies are required when the scheduler is enabled")
	}
	return nil
}

// AppConfig aggregates all settings required by the API server.
type AppConfig struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerSettings    `mapstructure:"server"`
	Database    DatabaseSettings  `mapstructure:"database"`
	Logger      LoggerSettings    `mapstructure:"logger"`
	Auth        AuthSettings      `mapstructure:"auth"`
	Scheduler   SchedulerSettings `mapstructure:"scheduler"`
}

// Validate checks that all nested settings are valid
func (c *AppConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(&c.Server); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(&c.Auth); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeAppConfig loads the application configuration from the given
// YAML file. Environment variables override file values, e.g. QS_AUTH_JWT_SECRET
// overrides auth.jwt_secret. DB_* and JWT_SECRET are also honored for
// compatibility with container deployments.
func InitializeAppConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)

	v.SetEnvPrefix("QS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyLegacyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.rotation_scan_frequency", "*/15 * * * *")
	v.SetDefault("scheduler.threat_scan_frequency", "*/5 * * * *")
	v.SetDefault("scheduler.threat_monitor_frequency", "0 * * * *")
}

// applyLegacyEnvOverrides maps the flat environment variables used by earlier
// deployments onto the structured config.
func applyLegacyEnvOverrides(cfg *AppConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		cfg.Server.FrontendURL = frontend
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s",
			host,
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_PORT"))
		cfg.Database.Type = PostgresDbType
		cfg.Database.DSN = dsn
		if name := os.Getenv("DB_NAME"); name != "" {
			cfg.Database.Name = name
		}
	}
}
