package config

type apiConfig struct {
	Enable     bool     `toml:"enable" mapstructure:"enable" json:"enable"`
	Port       int      `toml:"port" mapstructure:"port" json:"port" validate:"min=1,max=65535"`
	Token      string   `toml:"token" mapstructure:"token" json:"token"`
	TrustedIPs []string `toml:"trusted_ips" mapstructure:"trusted_ips" json:"trusted_ips"`
}
