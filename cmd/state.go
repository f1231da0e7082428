package cmd

import (
	"context"
	"fmt"

	"github.com/watchword/watchword/config"
	"github.com/watchword/watchword/core/watcher"
	"github.com/watchword/watchword/database"
	"github.com/watchword/watchword/pkg/keyword"
)

const (
	sourceConfig   = "config"
	sourceStore    = "store"
	sourceDefaults = "defaults"
)

// initialKeywords picks the startup keyword list: the configured override,
// then the stored list, then the built-in defaults.
func initialKeywords(override, stored, defaults []string) ([]string, string) {
	if words := keyword.NewSet(override...).List(); len(words) > 0 {
		return words, sourceConfig
	}
	if words := keyword.NewSet(stored...).List(); len(words) > 0 {
		return words, sourceStore
	}
	return keyword.NewSet(defaults...).List(), sourceDefaults
}

type startState struct {
	keywords []string
	source   string
	groups   []int64
}

func loadState(ctx context.Context, store database.Store) (startState, error) {
	var stored []string
	var groups []int64
	if store != nil {
		var err error
		if stored, err = store.LoadKeywords(ctx); err != nil {
			return startState{}, err
		}
		if groups, err = store.LoadGroups(ctx); err != nil {
			return startState{}, err
		}
	}
	words, source := initialKeywords(config.C().Monitor.Keywords, stored, config.DefaultKeywords)
	if store != nil && source != sourceStore {
		if err := store.SaveKeywords(ctx, words); err != nil {
			return startState{}, err
		}
	}
	return startState{keywords: words, source: source, groups: groups}, nil
}

type notifyTargets struct {
	primary  watcher.Target
	fallback *watcher.Target
	extra    []watcher.Target
}

func parseTargets(target, fallback string, extra []string) (notifyTargets, error) {
	var nt notifyTargets
	var err error
	if nt.primary, err = watcher.ParseTarget(target); err != nil {
		return nt, fmt.Errorf("notify.target: %w", err)
	}
	if fallback != "" {
		fb, err := watcher.ParseTarget(fallback)
		if err != nil {
			return nt, fmt.Errorf("notify.fallback: %w", err)
		}
		nt.fallback = &fb
	}
	for _, e := range extra {
		t, err := watcher.ParseTarget(e)
		if err != nil {
			return nt, fmt.Errorf("notify.extra_targets: %w", err)
		}
		nt.extra = append(nt.extra, t)
	}
	return nt, nil
}
