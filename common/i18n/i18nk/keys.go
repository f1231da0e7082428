// Package i18nk lists the message IDs found in the locale files.
package i18nk

type Key string

const (
	Unknown  Key = "unknown"
	NoHandle Key = "no_handle"
	NoLink   Key = "no_link"

	NotifyMatch      Key = "notify_match"
	NotifyMatchPlain Key = "notify_match_plain"
	StartupNotice    Key = "startup_notice"

	CmdAddUsage       Key = "cmd_add_usage"
	CmdAddSuccess     Key = "cmd_add_success"
	CmdAddExisting    Key = "cmd_add_existing"
	CmdAlreadyExists  Key = "cmd_already_exists"
	CmdRemoveUsage    Key = "cmd_remove_usage"
	CmdRemoveSuccess  Key = "cmd_remove_success"
	CmdRemoveNotFound Key = "cmd_remove_not_found"
	CmdListHeader     Key = "cmd_list_header"
	CmdListEmpty      Key = "cmd_list_empty"
	CmdStats          Key = "cmd_stats"
	CmdHelp           Key = "cmd_help"

	AuthAskPhone      Key = "auth_ask_phone"
	AuthAskCode       Key = "auth_ask_code"
	AuthAskPassword   Key = "auth_ask_password"
	AuthPhoneRetry    Key = "auth_phone_retry"
	AuthCodeRetry     Key = "auth_code_retry"
	AuthPasswordRetry Key = "auth_password_retry"
)
