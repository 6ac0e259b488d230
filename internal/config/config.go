package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Graph  GraphConfig  `mapstructure:"graph"  validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// GraphConfig contains the settings of the Microsoft Graph client.
type GraphConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	// RetryCount applies to throttled (429) and unavailable (503, 504) responses only.
	RetryCount int `mapstructure:"retry_count" validate:"gte=0,lte=10"`
	// MaxPages bounds how many @odata.nextLink pages a list call follows.
	MaxPages int `mapstructure:"max_pages" validate:"required,gt=0"`
}

// AuthConfig contains the identity provider and session settings.
type AuthConfig struct {
	ClientID     string   `mapstructure:"client_id"     validate:"required"`
	ClientSecret string   `mapstructure:"client_secret" validate:"required"`
	TenantID     string   `mapstructure:"tenant_id"     validate:"required"`
	RedirectURL  string   `mapstructure:"redirect_url"  validate:"required,url"`
	Scopes       []string `mapstructure:"scopes"        validate:"required,min=1"`

	SessionSecret          string `mapstructure:"session_secret"           validate:"required,min=32"`
	SessionLifetimeMinutes int    `mapstructure:"session_lifetime_minutes" validate:"required,gt=0"`
	SessionCapacity        int    `mapstructure:"session_capacity"         validate:"required,gt=0"`
	CookieSecure           bool   `mapstructure:"cookie_secure"`
}
