package watcher_test

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/common/i18n/i18nk"
	"github.com/watchword/watchword/core/watcher"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		ok   bool
		op   watcher.CommandOp
		args []string
	}{
		{text: "+كلمة", ok: true, op: watcher.CmdAdd, args: []string{"كلمة"}},
		{text: "  +a, b؛c\nd ", ok: true, op: watcher.CmdAdd, args: []string{"a", "b", "c", "d"}},
		{text: "+", ok: true, op: watcher.CmdAdd},
		{text: "- a ، a", ok: true, op: watcher.CmdRemove, args: []string{"a"}},
		{text: "#عرض", ok: true, op: watcher.CmdList},
		{text: "#LIST", ok: true, op: watcher.CmdList},
		{text: "#مساعدة", ok: true, op: watcher.CmdHelp},
		{text: "# help", ok: true, op: watcher.CmdHelp},
		{text: "!احصائيات", ok: true, op: watcher.CmdStats},
		{text: "!إحصائيات", ok: true, op: watcher.CmdStats},
		{text: "!stats", ok: true, op: watcher.CmdStats},
		{text: "#shopping list"},
		{text: "!!!"},
		{text: "hello"},
		{text: ""},
		{text: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd, ok := watcher.ParseCommand(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseCommand(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if cmd.Op != tt.op {
				t.Errorf("op = %s, want %s", cmd.Op, tt.op)
			}
			if len(cmd.Args) != 0 || len(tt.args) != 0 {
				if !reflect.DeepEqual(cmd.Args, tt.args) {
					t.Errorf("args = %q, want %q", cmd.Args, tt.args)
				}
			}
		})
	}
}

func lastReply(t *testing.T, p *fakePlatform) string {
	t.Helper()
	sent := p.messages()
	if len(sent) == 0 {
		t.Fatalf("no reply sent")
	}
	return sent[len(sent)-1].text
}

func TestAddIsIdempotent(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil)
	ctx := newTestContext()

	svc.OnSelfMessage(ctx, "+كلمة")
	first := lastReply(t, p)
	svc.OnSelfMessage(ctx, "+كلمة")
	second := lastReply(t, p)

	if got := svc.Keywords(); !reflect.DeepEqual(got, []string{"كلمة"}) {
		t.Fatalf("Keywords() = %q", got)
	}
	wantFirst := i18n.T(i18nk.CmdAddSuccess, map[string]any{"Count": 1, "Keywords": "كلمة"})
	if first != wantFirst {
		t.Errorf("first reply = %q, want %q", first, wantFirst)
	}
	wantSecond := i18n.T(i18nk.CmdAlreadyExists, map[string]any{"Keywords": "كلمة"})
	if second != wantSecond {
		t.Errorf("second reply = %q, want %q", second, wantSecond)
	}
	if first == second {
		t.Errorf("already-exists reply equals success reply")
	}
}

func TestAddRemoveRestoresOrder(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil, "one", "two", "three")
	ctx := newTestContext()
	before := svc.Keywords()

	svc.OnSelfMessage(ctx, "+a, b")
	if got := svc.Keywords(); !reflect.DeepEqual(got, []string{"one", "two", "three", "a", "b"}) {
		t.Fatalf("after add Keywords() = %q", got)
	}
	svc.OnSelfMessage(ctx, "-a, b")
	if got := svc.Keywords(); !reflect.DeepEqual(got, before) {
		t.Fatalf("after remove Keywords() = %q, want %q", got, before)
	}
}

func TestListReply(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil, "a", "b")
	svc.OnSelfMessage(newTestContext(), "#عرض")

	reply := lastReply(t, p)
	header := i18n.T(i18nk.CmdListHeader, map[string]any{"Count": 2})
	want := header + "\n1. a\n2. b"
	if reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}
}

func TestListEmpty(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil)
	svc.OnSelfMessage(newTestContext(), "#list")
	if reply := lastReply(t, p); reply != i18n.T(i18nk.CmdListEmpty) {
		t.Fatalf("reply = %q", reply)
	}
}

func TestAddSkipsExisting(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil, "x")
	svc.OnSelfMessage(newTestContext(), "+x, x, y")

	if got := svc.Keywords(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("Keywords() = %q", got)
	}
	reply := lastReply(t, p)
	added := i18n.T(i18nk.CmdAddSuccess, map[string]any{"Count": 1, "Keywords": "y"})
	if !strings.HasPrefix(reply, added) {
		t.Fatalf("reply = %q, want prefix %q", reply, added)
	}
}

func TestEmptyArgumentUsage(t *testing.T) {
	tests := []struct {
		text string
		want i18nk.Key
	}{
		{"+", i18nk.CmdAddUsage},
		{"+ ,، ;", i18nk.CmdAddUsage},
		{"-", i18nk.CmdRemoveUsage},
		{"-\n", i18nk.CmdRemoveUsage},
	}
	for _, tt := range tests {
		p := newFakePlatform()
		svc := newTestService(p, nil, "a")
		svc.OnSelfMessage(newTestContext(), tt.text)
		if reply := lastReply(t, p); reply != i18n.T(tt.want) {
			t.Errorf("%q: reply = %q, want usage", tt.text, reply)
		}
		if got := svc.Keywords(); !reflect.DeepEqual(got, []string{"a"}) {
			t.Errorf("%q: keywords changed to %q", tt.text, got)
		}
	}
}

func TestRemoveReportsMissing(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil, "a", "b")
	svc.OnSelfMessage(newTestContext(), "-b؛zz")

	want := i18n.T(i18nk.CmdRemoveSuccess, map[string]any{"Count": 1, "Keywords": "b"}) +
		"\n" + i18n.T(i18nk.CmdRemoveNotFound, map[string]any{"Keywords": "zz"})
	if reply := lastReply(t, p); reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}
	if got := svc.Keywords(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Keywords() = %q", got)
	}
}

func TestNonCommandsIgnored(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil, "a")
	ctx := newTestContext()
	for _, text := range []string{"note to self", "#todo buy milk", "!!", ""} {
		svc.OnSelfMessage(ctx, text)
	}
	if got := len(p.messages()); got != 0 {
		t.Fatalf("sent %d replies for non-commands", got)
	}
}

func TestStatsReply(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	now := start
	p := newFakePlatform()
	svc := watcher.NewService(p, watcher.Options{
		SelfID:     selfID,
		GroupsOnly: true,
		Keywords:   []string{"need"},
		Now:        func() time.Time { return now },
	})
	ctx := newTestContext()
	svc.OnMessage(ctx, groupMessage("need it"))
	svc.OnMessage(ctx, groupMessage("nope"))
	now = start.Add(2 * time.Hour)

	res := svc.Execute(ctx, watcher.Command{Op: watcher.CmdStats})
	want := watcher.Stats{Keywords: 1, Groups: 1, Scanned: 2, Matched: 1, Delivered: 1, Started: start}
	if res.Stats != want {
		t.Fatalf("Stats = %+v, want %+v", res.Stats, want)
	}
	if res.Uptime != "2 hours" {
		t.Fatalf("Uptime = %q", res.Uptime)
	}
	if !strings.Contains(res.Render(), "2 hours") {
		t.Fatalf("stats reply lacks uptime:\n%s", res.Render())
	}
}

func TestCommandPersistsKeywords(t *testing.T) {
	p := newFakePlatform()
	store := &fakeStore{}
	svc := newTestService(p, store, "a")
	ctx := newTestContext()

	svc.OnSelfMessage(ctx, "+b")
	svc.OnSelfMessage(ctx, "+b")
	svc.OnSelfMessage(ctx, "-a")
	if store.saves != 2 {
		t.Fatalf("saves = %d, want 2", store.saves)
	}
	if !reflect.DeepEqual(store.keywords, []string{"b"}) {
		t.Fatalf("stored keywords = %q", store.keywords)
	}
}

func TestConfirmationUsesFallback(t *testing.T) {
	p := newFakePlatform()
	p.fail[watcher.SelfTarget] = 1
	svc := newTestService(p, nil)
	svc.OnSelfMessage(newTestContext(), "+a")

	sent := p.messages()
	if len(sent) != 1 || sent[0].target != watcher.UserTarget(selfID) {
		t.Fatalf("confirmation not delivered through fallback: %+v", sent)
	}
}

func TestConcurrentCommands(t *testing.T) {
	p := newFakePlatform()
	svc := newTestService(p, nil)
	ctx := newTestContext()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.OnSelfMessage(ctx, "+same, other")
		}()
		go func() {
			defer wg.Done()
			svc.OnMessage(ctx, groupMessage("same text"))
		}()
	}
	wg.Wait()
	if got := svc.Keywords(); !reflect.DeepEqual(got, []string{"same", "other"}) {
		t.Fatalf("Keywords() = %q", got)
	}
}

func TestKeywordsReadableWhileSaving(t *testing.T) {
	p := newFakePlatform()
	store := newBlockingStore()
	svc := newTestService(p, store, "a")
	ctx := newTestContext()

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.OnSelfMessage(ctx, "+b")
	}()
	<-store.entered

	read := make(chan []string, 1)
	go func() { read <- svc.Keywords() }()
	select {
	case got := <-read:
		if !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("Keywords() = %q during save", got)
		}
	case <-time.After(time.Second):
		t.Error("Keywords() blocked while the store was saving")
	}

	close(store.release)
	<-done
	if !reflect.DeepEqual(store.keywords, []string{"a", "b"}) {
		t.Fatalf("stored keywords = %q", store.keywords)
	}
}

func TestConcurrentCommandsStoreLatest(t *testing.T) {
	p := newFakePlatform()
	store := &fakeStore{}
	svc := newTestService(p, store)
	ctx := newTestContext()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc.OnSelfMessage(ctx, fmt.Sprintf("+kw%d", i))
		}(i)
	}
	wg.Wait()
	want := svc.Keywords()
	if len(want) != 20 {
		t.Fatalf("Keywords() has %d entries, want 20", len(want))
	}
	if !reflect.DeepEqual(store.keywords, want) {
		t.Fatalf("stored keywords = %q, want %q", store.keywords, want)
	}
}
