// Package keyword holds the ordered keyword list and the substring matcher
// used to scan group messages.
package keyword

import (
	"errors"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

// Separators accepted between keywords in a single add or remove request.
const Separators = ",،;؛\n"

var ErrEmpty = errors.New("no keywords given")

// Parse is Split that fails with ErrEmpty when nothing is left.
func Parse(s string) ([]string, error) {
	words := Split(s)
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// Split breaks s on any of Separators, trims every part and drops empty and
// repeated parts. Order of first occurrence is kept.
func Split(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(Separators, r)
	})
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if w := strings.TrimSpace(part); w != "" {
			words = append(words, w)
		}
	}
	return slice.Unique(words)
}

// Set is an insertion ordered list of keywords without empty strings or exact
// duplicates. It is not safe for concurrent use.
type Set struct {
	words []string
}

func NewSet(words ...string) *Set {
	s := &Set{words: make([]string, 0, len(words))}
	s.Add(words...)
	return s
}

// Add appends the words not yet present. It reports which words were added
// and which were already in the set, both in argument order.
func (s *Set) Add(words ...string) (added, existing []string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if slice.Contain(s.words, w) {
			if !slice.Contain(existing, w) {
				existing = append(existing, w)
			}
			continue
		}
		s.words = append(s.words, w)
		added = append(added, w)
	}
	return added, existing
}

// Remove deletes the given words. Remaining words keep their relative order.
func (s *Set) Remove(words ...string) (removed, missing []string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		idx := slice.IndexOf(s.words, w)
		if idx < 0 {
			if !slice.Contain(missing, w) && !slice.Contain(removed, w) {
				missing = append(missing, w)
			}
			continue
		}
		s.words = append(s.words[:idx], s.words[idx+1:]...)
		removed = append(removed, w)
	}
	return removed, missing
}

func (s *Set) Contains(word string) bool {
	return slice.Contain(s.words, word)
}

func (s *Set) Len() int {
	return len(s.words)
}

// List returns a copy of the keywords in insertion order.
func (s *Set) List() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Match returns every keyword whose lower-cased form is a substring of the
// lower-cased text, in the order of keywords.
func Match(keywords []string, text string) []string {
	if text == "" || len(keywords) == 0 {
		return nil
	}
	lowered := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}
