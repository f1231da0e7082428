package cmd

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/watchword/watchword/core/watcher"
)

func TestInitialKeywords(t *testing.T) {
	defaults := []string{"محتاج", "اريد"}
	tests := []struct {
		name       string
		override   []string
		stored     []string
		want       []string
		wantSource string
	}{
		{"override wins", []string{"a", " b ", "a"}, []string{"s"}, []string{"a", "b"}, sourceConfig},
		{"stored", nil, []string{"s1", "s2"}, []string{"s1", "s2"}, sourceStore},
		{"blank override ignored", []string{" "}, []string{"s"}, []string{"s"}, sourceStore},
		{"defaults", nil, nil, defaults, sourceDefaults},
	}
	for _, tt := range tests {
		got, source := initialKeywords(tt.override, tt.stored, defaults)
		if !reflect.DeepEqual(got, tt.want) || source != tt.wantSource {
			t.Errorf("%s: initialKeywords() = %q, %s; want %q, %s", tt.name, got, source, tt.want, tt.wantSource)
		}
	}
}

func TestParseTargets(t *testing.T) {
	nt, err := parseTargets("me", "", []string{"@alerts", "42"})
	if err != nil {
		t.Fatalf("parseTargets() error = %v", err)
	}
	if nt.primary != watcher.SelfTarget || nt.fallback != nil {
		t.Fatalf("primary/fallback = %v/%v", nt.primary, nt.fallback)
	}
	want := []watcher.Target{{Kind: watcher.TargetUsername, Username: "alerts"}, watcher.UserTarget(42)}
	if !reflect.DeepEqual(nt.extra, want) {
		t.Fatalf("extra = %+v", nt.extra)
	}

	nt, err = parseTargets("@boss", "123", nil)
	if err != nil || nt.fallback == nil || *nt.fallback != watcher.UserTarget(123) {
		t.Fatalf("fallback = %v, %v", nt.fallback, err)
	}

	for _, bad := range [][3]string{{"0", "", ""}, {"me", "two words", ""}, {"me", "", "@"}} {
		var extra []string
		if bad[2] != "" {
			extra = []string{bad[2]}
		}
		if _, err := parseTargets(bad[0], bad[1], extra); err == nil {
			t.Errorf("parseTargets(%q) error = nil", bad)
		}
	}
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	printKeywords(&buf, []string{"a", "b"})
	out := buf.String()
	if !strings.Contains(out, "Keywords (2)") || strings.Index(out, "a") > strings.Index(out, "b") {
		t.Fatalf("output = %q", out)
	}
}
