package watcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/duke-git/lancet/v2/validator"
)

type TargetKind int

const (
	TargetSelf TargetKind = iota
	TargetUser
	TargetUsername
)

// Target is a destination for outgoing text: the operator's Saved Messages,
// a numeric user id or a public username.
type Target struct {
	Kind     TargetKind
	ID       int64
	Username string
}

var SelfTarget = Target{Kind: TargetSelf}

func UserTarget(id int64) Target {
	return Target{Kind: TargetUser, ID: id}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetUser:
		return strconv.FormatInt(t.ID, 10)
	case TargetUsername:
		return "@" + t.Username
	default:
		return "me"
	}
}

// ParseTarget accepts "me" (or "self", or empty), a numeric id or a username
// with or without the leading @.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "me", "self":
		return SelfTarget, nil
	}
	if validator.IsIntStr(s) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Target{}, fmt.Errorf("invalid target id %q: %w", s, err)
		}
		if id == 0 {
			return Target{}, fmt.Errorf("invalid target id %q", s)
		}
		return UserTarget(id), nil
	}
	name := strings.TrimPrefix(s, "@")
	if name == "" || strings.ContainsAny(name, " /\t\n") {
		return Target{}, fmt.Errorf("invalid target username %q", s)
	}
	return Target{Kind: TargetUsername, Username: name}, nil
}
