package config

type cacheConfig struct {
	TTL         int64 `toml:"ttl" mapstructure:"ttl" json:"ttl" validate:"min=0"`
	NumCounters int64 `toml:"num_counters" mapstructure:"num_counters" json:"num_counters" validate:"min=1"`
	MaxCost     int64 `toml:"max_cost" mapstructure:"max_cost" json:"max_cost" validate:"min=1"`
}
