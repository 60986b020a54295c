package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/playback"
	"github.com/go-reel/reel/pkg/store"
	"github.com/go-reel/reel/pkg/timeline"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
playback:
  fps: 30
  loop: true
timeline:
  snapThreshold: 0.5
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playback.FPS != 30 || !cfg.Playback.Loop {
		t.Errorf("playback = %+v", cfg.Playback)
	}
	if cfg.Timeline.SnapThreshold != 0.5 {
		t.Errorf("snapThreshold = %g, want 0.5", cfg.Timeline.SnapThreshold)
	}
	// Omitted fields fall back to their defaults.
	if cfg.Timeline.DefaultClipDuration != 5 || cfg.Timeline.PixelsPerSecond != 100 {
		t.Errorf("timeline defaults not filled: %+v", cfg.Timeline)
	}
}

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, doc := range []string{
		"playback:\n  fps: -1\n",
		"timeline:\n  minClipDuration: -0.1\n",
		"timeline:\n  snapThreshold: -2\n",
		"timeline:\n  pixelsPerSecond: -100\n",
		"playback: [not, a, mapping]\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) accepted", doc)
		} else if e, ok := err.(*errors.Error); !ok || e.Kind != errors.KindConfig {
			t.Errorf("Parse(%q) error = %v, want KindConfig", doc, err)
		}
	}
}

func TestConfigConfiguresEngine(t *testing.T) {
	cfg, err := Parse([]byte(`
playback:
  fps: 24
  loop: true
timeline:
  defaultClipDuration: 8
  minClipDuration: 0.5
  snapThreshold: 0.3
  pixelsPerSecond: 40
`))
	if err != nil {
		t.Fatal(err)
	}

	st := store.NewWithOptions(cfg.StoreOptions())
	a, err := st.InitAnimation("el-1")
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Clip().Duration; got != 8 {
		t.Errorf("default clip duration = %g, want 8", got)
	}

	p := playback.NewPlayer(st)
	tc := timeline.NewController(st, p)
	cfg.Apply(p, tc)

	if p.FPS() != 24 || !p.Loop() {
		t.Errorf("player = (fps %g, loop %v), want (24, true)", p.FPS(), p.Loop())
	}
	if tc.SnapThreshold != 0.3 || tc.MinClipDuration != 0.5 {
		t.Errorf("controller = (snap %g, minDur %g), want (0.3, 0.5)", tc.SnapThreshold, tc.MinClipDuration)
	}
	if tc.View.PixelsPerSecond != 40 {
		t.Errorf("zoom = %g, want 40", tc.View.PixelsPerSecond)
	}

	// Nil targets are skipped rather than dereferenced.
	cfg.Apply(nil, nil)
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	// Missing file yields defaults, not an error.
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("missing file: got %+v, want defaults", cfg)
	}

	data := []byte("playback:\n  fps: 24\n")
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playback.FPS != 24 {
		t.Errorf("fps = %g, want 24", cfg.Playback.FPS)
	}
}
