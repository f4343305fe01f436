package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// PracticeConfig contains the practice engine tunables.
type PracticeConfig struct {
	// SessionSize is the default number of exercises per session.
	SessionSize int `mapstructure:"session_size" validate:"required,gt=0,lte=100"`

	// DueRatio is the fraction of a session reserved for due reviews.
	DueRatio float64 `mapstructure:"due_ratio" validate:"gte=0,lte=1"`

	// WindowSize is the rolling accuracy window length for tier changes.
	WindowSize int `mapstructure:"window_size" validate:"required,gt=0"`

	// FastLatencyMs is the response-time ceiling for a top quality grade.
	FastLatencyMs int64 `mapstructure:"fast_latency_ms" validate:"required,gt=0"`

	// AccentInsensitive accepts answers that differ from the expected
	// form only in accent marks.
	AccentInsensitive bool `mapstructure:"accent_insensitive"`
}
