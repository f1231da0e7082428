package config

// dbConfig selects where keywords and monitored groups are kept between runs.
// If RedisAddr is set, Redis is used instead of SQLite.
type dbConfig struct {
	Persist bool   `toml:"persist" mapstructure:"persist" json:"persist"`
	Path    string `toml:"path" mapstructure:"path" json:"path" validate:"required_if=Persist true"`

	RedisAddr     string `toml:"redis_addr" mapstructure:"redis_addr" json:"redis_addr"`
	RedisUser     string `toml:"redis_user" mapstructure:"redis_user" json:"redis_user"`
	RedisPassword string `toml:"redis_password" mapstructure:"redis_password" json:"redis_password"`
	RedisDB       int    `toml:"redis_db" mapstructure:"redis_db" json:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix" mapstructure:"redis_prefix" json:"redis_prefix"`
}
