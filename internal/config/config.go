package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Sweep    SweepConfig    `mapstructure:"sweep"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=0,lte=31"`
}

// SweepConfig controls the weeklist lifecycle windows and the daily
// deactivation sweep.
type SweepConfig struct {
	// CronSpec is the schedule for the expiry sweep, in standard five-field
	// cron syntax. Defaults to midnight every day.
	CronSpec string `mapstructure:"cron_spec" validate:"required"`

	// WeeklistTTLHours is the age at which a weeklist becomes inactive.
	WeeklistTTLHours int `mapstructure:"weeklist_ttl_hours" validate:"required,gt=0"`

	// EditWindowHours is the window after creation during which a weeklist's
	// task structure may be changed.
	EditWindowHours int `mapstructure:"edit_window_hours" validate:"required,gt=0"`
}
