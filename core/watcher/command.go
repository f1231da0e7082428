package watcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/common/i18n/i18nk"
	"github.com/watchword/watchword/pkg/keyword"
)

type CommandOp int

const (
	CmdAdd CommandOp = iota + 1
	CmdRemove
	CmdList
	CmdHelp
	CmdStats
)

func (op CommandOp) String() string {
	switch op {
	case CmdAdd:
		return "add"
	case CmdRemove:
		return "remove"
	case CmdList:
		return "list"
	case CmdHelp:
		return "help"
	case CmdStats:
		return "stats"
	default:
		return "unknown"
	}
}

type Command struct {
	Op   CommandOp
	Args []string
}

var (
	listWords  = []string{"عرض", "list"}
	helpWords  = []string{"مساعدة", "help"}
	statsWords = []string{"احصائيات", "إحصائيات", "stats"}
)

// ParseCommand reads a Saved Messages text. ok is false for anything that is
// not a command; an add or remove with no words is still a command.
func ParseCommand(text string) (cmd Command, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Command{}, false
	}
	rest := text[1:]
	switch text[0] {
	case '+':
		return Command{Op: CmdAdd, Args: keyword.Split(rest)}, true
	case '-':
		return Command{Op: CmdRemove, Args: keyword.Split(rest)}, true
	case '#':
		switch sub := firstWord(rest); {
		case containsFold(listWords, sub):
			return Command{Op: CmdList}, true
		case containsFold(helpWords, sub):
			return Command{Op: CmdHelp}, true
		}
	case '!':
		if containsFold(statsWords, firstWord(rest)) {
			return Command{Op: CmdStats}, true
		}
	}
	return Command{}, false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func containsFold(words []string, s string) bool {
	for _, w := range words {
		if strings.EqualFold(w, s) {
			return true
		}
	}
	return false
}

// Result is the outcome of one command, rendered as the confirmation reply.
type Result struct {
	Op       CommandOp
	Usage    bool
	Added    []string
	Existing []string
	Removed  []string
	Missing  []string
	Keywords []string
	Stats    Stats
	Uptime   string
}

// Execute applies cmd under the service's write lock. Changes to the keyword
// list are saved to the store after the lock is released.
func (s *Service) Execute(ctx context.Context, cmd Command) Result {
	res := Result{Op: cmd.Op}
	switch cmd.Op {
	case CmdAdd, CmdRemove:
		if len(cmd.Args) == 0 {
			res.Usage = true
			return res
		}
		s.mu.Lock()
		if cmd.Op == CmdAdd {
			res.Added, res.Existing = s.keywords.Add(cmd.Args...)
		} else {
			res.Removed, res.Missing = s.keywords.Remove(cmd.Args...)
		}
		if len(res.Added) == 0 && len(res.Removed) == 0 {
			s.mu.Unlock()
			return res
		}
		s.revision++
		rev, snapshot := s.revision, s.keywords.List()
		s.mu.Unlock()
		s.saveKeywords(ctx, rev, snapshot)
	case CmdList:
		res.Keywords = s.Keywords()
	case CmdStats:
		res.Stats = s.Stats()
		res.Uptime = strings.TrimSpace(humanize.RelTime(res.Stats.Started, s.now(), "", ""))
	}
	return res
}

// saveKeywords writes snapshot, taken at revision rev, unless a newer
// revision has been written already. It must be called without mu held.
func (s *Service) saveKeywords(ctx context.Context, rev uint64, snapshot []string) {
	if s.store == nil {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if rev <= s.saved {
		return
	}
	if err := s.store.SaveKeywords(ctx, snapshot); err != nil {
		log.FromContext(ctx).WithPrefix("command").Error("Failed to persist keywords", "error", err)
		return
	}
	s.saved = rev
}

func (r Result) Render() string {
	switch r.Op {
	case CmdAdd:
		if r.Usage {
			return i18n.T(i18nk.CmdAddUsage)
		}
		if len(r.Added) == 0 {
			return i18n.T(i18nk.CmdAlreadyExists, map[string]any{"Keywords": join(r.Existing)})
		}
		reply := i18n.T(i18nk.CmdAddSuccess, map[string]any{"Count": len(r.Added), "Keywords": join(r.Added)})
		if len(r.Existing) > 0 {
			reply += "\n" + i18n.T(i18nk.CmdAddExisting, map[string]any{"Keywords": join(r.Existing)})
		}
		return reply
	case CmdRemove:
		if r.Usage {
			return i18n.T(i18nk.CmdRemoveUsage)
		}
		var parts []string
		if len(r.Removed) > 0 {
			parts = append(parts, i18n.T(i18nk.CmdRemoveSuccess, map[string]any{"Count": len(r.Removed), "Keywords": join(r.Removed)}))
		}
		if len(r.Missing) > 0 {
			parts = append(parts, i18n.T(i18nk.CmdRemoveNotFound, map[string]any{"Keywords": join(r.Missing)}))
		}
		return strings.Join(parts, "\n")
	case CmdList:
		if len(r.Keywords) == 0 {
			return i18n.T(i18nk.CmdListEmpty)
		}
		var sb strings.Builder
		sb.WriteString(i18n.T(i18nk.CmdListHeader, map[string]any{"Count": len(r.Keywords)}))
		for i, kw := range r.Keywords {
			fmt.Fprintf(&sb, "\n%d. %s", i+1, kw)
		}
		return sb.String()
	case CmdHelp:
		return i18n.T(i18nk.CmdHelp)
	case CmdStats:
		return i18n.T(i18nk.CmdStats, map[string]any{
			"Keywords":  r.Stats.Keywords,
			"Groups":    r.Stats.Groups,
			"Scanned":   r.Stats.Scanned,
			"Matched":   r.Stats.Matched,
			"Delivered": r.Stats.Delivered,
			"Failed":    r.Stats.Failed,
			"Uptime":    r.Uptime,
		})
	}
	return ""
}

func join(words []string) string {
	return strings.Join(words, ", ")
}

// OnSelfMessage handles text the operator wrote to Saved Messages. Anything
// that is not a command is ignored.
func (s *Service) OnSelfMessage(ctx context.Context, text string) {
	cmd, ok := ParseCommand(text)
	if !ok {
		return
	}
	logger := log.FromContext(ctx).WithPrefix("command")
	res := s.Execute(ctx, cmd)
	logger.Info("Command", "op", cmd.Op, "args", cmd.Args, "added", res.Added, "removed", res.Removed)
	reply := res.Render()
	if reply == "" {
		return
	}
	if err := s.sender.Deliver(ctx, reply); err != nil {
		logger.Error("Failed to send confirmation", "op", cmd.Op, "error", err)
	}
}
