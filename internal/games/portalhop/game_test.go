package portalhop

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/portalhop/internal/core"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
	"github.com/vovakirdan/portalhop/internal/registry"
	"github.com/vovakirdan/portalhop/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameDeterminism(t *testing.T) {
	run := func() sim.Snapshot {
		g := New()
		g.Reset(testRuntime())
		for i := 0; i < 600; i++ {
			var in core.InputFrame
			switch {
			case i%60 == 0:
				in = frame(core.ActionRight, core.ActionJump)
			case i%90 < 60:
				in = frame(core.ActionRight)
			default:
				in = frame()
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different sessions: %+v vs %+v", a.Player, b.Player)
	}
}

func TestGameClockAdvancesPerStep(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	for i := 0; i < 60; i++ {
		g.Step(frame())
	}
	if got, want := g.Snapshot().Now, 60*(time.Second/60); got != want {
		t.Errorf("Now = %v after 60 steps, expected %v", got, want)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(frame())
	before := g.Snapshot().Now

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state after pause action")
	}
	g.Step(frame(core.ActionRight))
	if g.Snapshot().Now != before {
		t.Error("simulation advanced while paused")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay not rendered")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause action should resume")
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(frame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.HasPrefix(screen.Row(0), " Stage 1  Best 1") {
		t.Errorf("HUD row = %q, expected stage and best", screen.Row(0))
	}
	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player not rendered")
	}
	if !strings.ContainsAny(out, string([]rune{PlatformLight, PlatformDark})) {
		t.Error("start platforms not rendered")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := New()
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 20, 8
	g.Reset(rt)

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	g.Resize(80, 24)
	screen.Resize(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "Window too small") {
		t.Error("resize should clear the too-small state")
	}
}

func TestGameUsesProgressStore(t *testing.T) {
	store := storage.NewMemory()
	store.SaveHighestStage(3)
	SetProgressStore(store)
	defer SetProgressStore(nil)

	g := New()
	g.Reset(testRuntime())
	if got := g.State().Score; got != 3 {
		t.Errorf("Score = %d, expected saved stage 3", got)
	}

	g.Step(frame(core.ActionReset))
	if got, _ := store.LoadHighestStage(); got != 1 {
		t.Errorf("stored stage = %d after reset, expected 1", got)
	}
	if got := g.State().Score; got != 1 {
		t.Errorf("Score = %d after reset, expected 1", got)
	}
}

func TestMapInput(t *testing.T) {
	got := MapInput(frame(core.ActionLeft, core.ActionJump))
	want := sim.Input{MoveLeft: true, Jump: true}
	if got != want {
		t.Errorf("MapInput() = %+v, expected %+v", got, want)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    float64
		w    int
		want string
	}{
		{0, 6, "[    ]"},
		{0.5, 12, "[=====     ]"},
		{2, 6, "[====]"},
		{0.5, 2, ""},
	}
	for _, tt := range tests {
		if got := progressBar(tt.p, tt.w); got != tt.want {
			t.Errorf("progressBar(%v, %d) = %q, expected %q", tt.p, tt.w, got, tt.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("portalhop")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Portal Hop" {
		t.Errorf("Title() = %q, expected Portal Hop", g.Title())
	}
}
