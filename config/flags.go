package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file path")
	flags.StringP("lang", "l", "", "language (ar, en)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("proxy", "", "proxy URL (http, https, socks5, socks5h)")

	flags.Int("telegram-app-id", 0, "telegram app id")
	flags.String("telegram-app-hash", "", "telegram app hash")
	flags.String("telegram-phone", "", "phone number of the watched account")
	flags.String("telegram-session", "", "session database path")
	flags.Int("telegram-rpc-retry", 0, "telegram rpc retry times")

	flags.String("db-path", "", "keyword database path")
	flags.Bool("no-persist", false, "keep keywords in memory only")

	flags.StringSlice("keywords", nil, "override keyword list")
	flags.String("notify-target", "", "notification target (me, user id or @username)")

	flags.Bool("api-enable", false, "enable the http api")
	flags.Int("api-port", 0, "http api port")

	bindFlags(cmd)
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	viper.BindPFlag("lang", flags.Lookup("lang"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("proxy", flags.Lookup("proxy"))

	viper.BindPFlag("telegram.app_id", flags.Lookup("telegram-app-id"))
	viper.BindPFlag("telegram.app_hash", flags.Lookup("telegram-app-hash"))
	viper.BindPFlag("telegram.phone", flags.Lookup("telegram-phone"))
	viper.BindPFlag("telegram.session", flags.Lookup("telegram-session"))
	viper.BindPFlag("telegram.rpc_retry", flags.Lookup("telegram-rpc-retry"))

	viper.BindPFlag("db.path", flags.Lookup("db-path"))

	viper.BindPFlag("monitor.keywords", flags.Lookup("keywords"))
	viper.BindPFlag("notify.target", flags.Lookup("notify-target"))

	viper.BindPFlag("api.enable", flags.Lookup("api-enable"))
	viper.BindPFlag("api.port", flags.Lookup("api-port"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}

// ApplyFlagOverrides handles flags that do not map one to one onto a key.
func ApplyFlagOverrides(cmd *cobra.Command) {
	if noPersist, _ := cmd.Flags().GetBool("no-persist"); noPersist {
		cfg.DB.Persist = false
	}
}
