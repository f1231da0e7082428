package watcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/common/i18n/i18nk"
	"github.com/watchword/watchword/pkg/keyword"
)

type Options struct {
	// SelfID is the numeric id of the logged in account.
	SelfID     int64
	GroupsOnly bool
	Keywords   []string
	Groups     []int64
	// Store may be nil, state is then kept in memory only.
	Store Store
	// Notify targets. Fallback defaults to the operator's numeric id.
	Target   Target
	Fallback *Target
	Extra    []Target
	Now      func() time.Time
}

// Service owns the keyword list, the monitored group set and the counters.
// Handlers may run concurrently; mu guards keywords, groups and revision.
type Service struct {
	mu       sync.RWMutex
	keywords *keyword.Set
	groups   map[int64]struct{}
	// revision counts keyword list changes. saveMu orders store writes so an
	// older snapshot never overwrites a newer one.
	revision uint64
	saveMu   sync.Mutex
	saved    uint64

	selfID     int64
	groupsOnly bool
	platform   Platform
	store      Store
	sender     *Sender
	now        func() time.Time
	started    time.Time

	scanned   atomic.Uint64
	matched   atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
}

func NewService(platform Platform, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	fallback := UserTarget(opts.SelfID)
	if opts.Fallback != nil {
		fallback = *opts.Fallback
	}
	s := &Service{
		keywords:   keyword.NewSet(opts.Keywords...),
		groups:     make(map[int64]struct{}, len(opts.Groups)),
		selfID:     opts.SelfID,
		groupsOnly: opts.GroupsOnly,
		platform:   platform,
		store:      opts.Store,
		sender:     NewSender(platform, opts.Target, fallback, opts.Extra...),
		now:        now,
	}
	for _, id := range opts.Groups {
		s.groups[id] = struct{}{}
	}
	s.started = now()
	return s
}

func (s *Service) SelfID() int64 {
	return s.selfID
}

// Keywords returns a snapshot of the keyword list.
func (s *Service) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keywords.List()
}

func (s *Service) GroupCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups)
}

type Stats struct {
	Keywords  int       `json:"keywords"`
	Groups    int       `json:"groups"`
	Scanned   uint64    `json:"scanned"`
	Matched   uint64    `json:"matched"`
	Delivered uint64    `json:"delivered"`
	Failed    uint64    `json:"failed"`
	Started   time.Time `json:"started"`
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	kw, groups := s.keywords.Len(), len(s.groups)
	s.mu.RUnlock()
	return Stats{
		Keywords:  kw,
		Groups:    groups,
		Scanned:   s.scanned.Load(),
		Matched:   s.matched.Load(),
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
		Started:   s.started,
	}
}

// Announce tells the operator that monitoring has started.
func (s *Service) Announce(ctx context.Context) error {
	st := s.Stats()
	return s.sender.Deliver(ctx, i18n.T(i18nk.StartupNotice, map[string]any{
		"Keywords": st.Keywords,
		"Groups":   st.Groups,
	}))
}

// trackGroup records chat and reports whether it was new.
func (s *Service) trackGroup(ctx context.Context, chat Chat) bool {
	s.mu.Lock()
	_, seen := s.groups[chat.ID]
	if !seen {
		s.groups[chat.ID] = struct{}{}
	}
	s.mu.Unlock()
	if seen {
		return false
	}
	if s.store != nil {
		if err := s.store.AddGroup(ctx, chat); err != nil {
			log.FromContext(ctx).WithPrefix("monitor").Warn("Failed to persist group", "chat_id", chat.ID, "error", err)
		}
	}
	return true
}
