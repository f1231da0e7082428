package config

type telegramConfig struct {
	AppID   int    `toml:"app_id" mapstructure:"app_id" json:"app_id" validate:"required"`
	AppHash string `toml:"app_hash" mapstructure:"app_hash" json:"app_hash" validate:"required"`
	Phone   string `toml:"phone" mapstructure:"phone" json:"phone"`
	// Session is the path of the sqlite session file.
	Session string `toml:"session" mapstructure:"session" json:"session" validate:"required"`
	// SessionString is a Telethon string session; it takes precedence over Session.
	SessionString string          `toml:"session_string" mapstructure:"session_string" json:"session_string"`
	Proxy         tgProxyConfig   `toml:"proxy" mapstructure:"proxy" json:"proxy"`
	RpcRetry      int             `toml:"rpc_retry" mapstructure:"rpc_retry" json:"rpc_retry" validate:"min=1"`
	FloodRetry    uint            `toml:"flood_retry" mapstructure:"flood_retry" json:"flood_retry"`
	RateLimit     rateLimitConfig `toml:"rate_limit" mapstructure:"rate_limit" json:"rate_limit"`
}

type tgProxyConfig struct {
	Enable bool   `toml:"enable" mapstructure:"enable" json:"enable"`
	URL    string `toml:"url" mapstructure:"url" json:"url" validate:"required_if=Enable true"`
}

type rateLimitConfig struct {
	Enable     bool `toml:"enable" mapstructure:"enable" json:"enable"`
	IntervalMS int  `toml:"interval_ms" mapstructure:"interval_ms" json:"interval_ms" validate:"min=0"`
	Burst      int  `toml:"burst" mapstructure:"burst" json:"burst" validate:"min=0"`
}
