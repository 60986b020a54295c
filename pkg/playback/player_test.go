package playback_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-reel/reel/pkg/playback"
	"github.com/go-reel/reel/pkg/store"
	reeltesting "github.com/go-reel/reel/pkg/testing"
)

// newFixture returns a player over a store with a single 10-second clip,
// driven by a fake clock.
func newFixture(t *testing.T) (*playback.Player, *reeltesting.FakeClock) {
	t.Helper()
	clk := reeltesting.NewFakeClock()
	prev := playback.SetClock(clk)
	t.Cleanup(func() { playback.SetClock(prev) })

	st := store.New()
	if _, err := st.InitAnimation("el-1"); err != nil {
		t.Fatal(err)
	}
	dur := 10.0
	if err := st.UpdateClip("el-1", store.ClipPatch{Duration: &dur}); err != nil {
		t.Fatal(err)
	}
	return playback.NewPlayer(st), clk
}

func pump(clk *reeltesting.FakeClock, d time.Duration) {
	clk.Advance(d)
	playback.StepTickers()
}

func TestSeekClamps(t *testing.T) {
	p, _ := newFixture(t)

	p.SeekTo(-10)
	if p.CurrentTime() != 0 {
		t.Errorf("SeekTo(-10): currentTime = %g, want 0", p.CurrentTime())
	}
	p.SeekTo(p.Duration() + 10)
	if p.CurrentTime() != 10 {
		t.Errorf("SeekTo(duration+10): currentTime = %g, want 10", p.CurrentTime())
	}
	p.SeekToStart()
	if p.CurrentTime() != 0 {
		t.Errorf("SeekToStart: currentTime = %g, want 0", p.CurrentTime())
	}
	p.SeekToEnd()
	if p.CurrentTime() != 10 {
		t.Errorf("SeekToEnd: currentTime = %g, want 10", p.CurrentTime())
	}
}

func TestPlayAdvancesWithTicks(t *testing.T) {
	p, clk := newFixture(t)

	p.Play()
	if !p.IsPlaying() {
		t.Fatal("not playing after Play")
	}
	pump(clk, 500*time.Millisecond)
	if got := p.CurrentTime(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("after 500ms: currentTime = %g, want 0.5", got)
	}
	pump(clk, 1500*time.Millisecond)
	if got := p.CurrentTime(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("after 2s total: currentTime = %g, want 2", got)
	}

	p.Pause()
	pump(clk, time.Second)
	if got := p.CurrentTime(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("paused clock advanced to %g", got)
	}
}

func TestPlaybackHoldsAtDuration(t *testing.T) {
	p, clk := newFixture(t)

	p.Play()
	pump(clk, 11*time.Second)
	if p.CurrentTime() != 10 {
		t.Errorf("currentTime = %g, want clamp at duration 10", p.CurrentTime())
	}
	if p.IsPlaying() {
		t.Error("still playing past the duration without loop")
	}
}

func TestLoopWraps(t *testing.T) {
	p, clk := newFixture(t)
	p.SetLoop(true)

	p.Play()
	pump(clk, 10500*time.Millisecond)
	if got := p.CurrentTime(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("looped currentTime = %g, want 0.5", got)
	}
	if !p.IsPlaying() {
		t.Error("loop stopped playback")
	}
}

func TestPlayFromEndRewinds(t *testing.T) {
	p, clk := newFixture(t)
	p.SeekToEnd()

	p.Play()
	pump(clk, time.Second)
	if got := p.CurrentTime(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("currentTime = %g, want 1 (rewound before playing)", got)
	}
}

func TestStopRewindsToZero(t *testing.T) {
	p, clk := newFixture(t)
	p.Play()
	pump(clk, 3*time.Second)

	p.Stop()
	if p.CurrentTime() != 0 || p.IsPlaying() {
		t.Errorf("Stop: time=%g playing=%v, want 0/false", p.CurrentTime(), p.IsPlaying())
	}
}

func TestStepByExactFrames(t *testing.T) {
	p, _ := newFixture(t)
	p.SetFPS(25)

	p.StepForward()
	if got := p.CurrentTime(); math.Abs(got-0.04) > 1e-9 {
		t.Errorf("StepForward: currentTime = %g, want 0.04", got)
	}
	p.StepBackward()
	p.StepBackward()
	if p.CurrentTime() != 0 {
		t.Errorf("StepBackward clamps at 0, got %g", p.CurrentTime())
	}

	p.SeekToEnd()
	p.StepForward()
	if p.CurrentTime() != 10 {
		t.Errorf("StepForward clamps at duration, got %g", p.CurrentTime())
	}
}

func TestStepWhilePlayingPauses(t *testing.T) {
	p, clk := newFixture(t)
	p.Play()
	pump(clk, time.Second)

	p.StepForward()
	if p.IsPlaying() {
		t.Error("stepping should pause playback")
	}
}

func TestPlayerListeners(t *testing.T) {
	p, clk := newFixture(t)
	fired := 0
	unsubscribe := p.AddListener(func() { fired++ })

	p.SeekTo(1)
	if fired != 1 {
		t.Fatalf("listener fired %d times after seek, want 1", fired)
	}
	p.Play()
	pump(clk, 100*time.Millisecond)
	if fired < 3 {
		t.Errorf("listener fired %d times after play+tick, want >= 3", fired)
	}

	unsubscribe()
	before := fired
	p.SeekTo(2)
	if fired != before {
		t.Error("unsubscribed listener fired")
	}
}
