package config

import "github.com/watchword/watchword/pkg/keyword"

type monitorConfig struct {
	// Keywords replaces the stored keyword list at startup when not empty.
	Keywords      []string `toml:"keywords" mapstructure:"keywords" json:"keywords"`
	GroupsOnly    bool     `toml:"groups_only" mapstructure:"groups_only" json:"groups_only"`
	StartupNotice bool     `toml:"startup_notice" mapstructure:"startup_notice" json:"startup_notice"`
}

type notifyConfig struct {
	// me, a numeric user id or @username
	Target string `toml:"target" mapstructure:"target" json:"target" validate:"required"`
	// defaults to the operator's numeric id
	Fallback string `toml:"fallback" mapstructure:"fallback" json:"fallback"`
	// copies sent after a successful delivery, off unless listed
	ExtraTargets []string `toml:"extra_targets" mapstructure:"extra_targets" json:"extra_targets"`
}

type scheduleConfig struct {
	StatsCron string `toml:"stats_cron" mapstructure:"stats_cron" json:"stats_cron"`
}

// splitKeywords accepts both a list and comma separated env values.
func splitKeywords(raw []string) []string {
	var out []string
	for _, item := range raw {
		out = append(out, keyword.Split(item)...)
	}
	return keyword.NewSet(out...).List()
}

// DefaultKeywords is used when neither the configuration nor the store
// provides a keyword list.
var DefaultKeywords = []string{
	"يسوي", "يحل", "يساعدني", "ابي شخص", "تعرفون حد",
	"ابي حد", "محتاج", "اريد", "اطلب", "ممكن حد",
	"ابغى", "ودي", "عايز", "بدي", "اريد واحد",
}
