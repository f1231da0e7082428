package i18n_test

import (
	"strings"
	"testing"

	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/common/i18n/i18nk"
)

var allKeys = []i18nk.Key{
	i18nk.Unknown, i18nk.NoHandle, i18nk.NoLink,
	i18nk.NotifyMatch, i18nk.NotifyMatchPlain, i18nk.StartupNotice,
	i18nk.CmdAddUsage, i18nk.CmdAddSuccess, i18nk.CmdAddExisting, i18nk.CmdAlreadyExists,
	i18nk.CmdRemoveUsage, i18nk.CmdRemoveSuccess, i18nk.CmdRemoveNotFound,
	i18nk.CmdListHeader, i18nk.CmdListEmpty, i18nk.CmdStats, i18nk.CmdHelp,
	i18nk.AuthAskPhone, i18nk.AuthAskCode, i18nk.AuthAskPassword,
	i18nk.AuthPhoneRetry, i18nk.AuthCodeRetry, i18nk.AuthPasswordRetry,
}

func TestAllKeysLocalized(t *testing.T) {
	for _, lang := range []string{"ar", "en"} {
		i18n.Init(lang)
		for _, key := range allKeys {
			if got := i18n.T(key); got == string(key) {
				t.Errorf("[%s] key %q has no translation", lang, key)
			}
		}
	}
}

func TestTemplateData(t *testing.T) {
	i18n.Init("en")
	got := i18n.T(i18nk.NotifyMatchPlain, map[string]any{
		"Keywords":  "a, b",
		"ChatTitle": "Group",
	})
	if !strings.Contains(got, "a, b") || !strings.Contains(got, "Group") {
		t.Fatalf("template data not applied: %q", got)
	}
}

func TestRepliesNeverLookLikeCommands(t *testing.T) {
	// replies land in Saved Messages and are read back by the command handler
	for _, lang := range []string{"ar", "en"} {
		i18n.Init(lang)
		for _, key := range allKeys {
			got := strings.TrimSpace(i18n.T(key))
			if got == "" {
				continue
			}
			if strings.ContainsRune("+-#!", []rune(got)[0]) {
				t.Errorf("[%s] %q starts with a command prefix: %q", lang, key, got)
			}
		}
	}
}
