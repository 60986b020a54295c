// Package config loads the optional reel.yaml engine configuration.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/playback"
	"github.com/go-reel/reel/pkg/store"
	"github.com/go-reel/reel/pkg/timeline"
)

// FileName is the optional configuration file looked up by LoadOptional.
const FileName = "reel.yaml"

// Config represents the optional reel.yaml configuration.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Timeline TimelineConfig `yaml:"timeline"`
}

// PlaybackConfig contains playback clock settings.
type PlaybackConfig struct {
	// FPS is the frame rate used for frame stepping.
	FPS float64 `yaml:"fps,omitempty"`
	// Loop wraps playback at the sequence duration.
	Loop bool `yaml:"loop,omitempty"`
}

// TimelineConfig contains timeline editing settings.
type TimelineConfig struct {
	// DefaultClipDuration is given to newly registered elements, seconds.
	DefaultClipDuration float64 `yaml:"defaultClipDuration,omitempty"`
	// MinClipDuration is the resize floor, seconds.
	MinClipDuration float64 `yaml:"minClipDuration,omitempty"`
	// SnapThreshold is the snap attraction distance, seconds.
	SnapThreshold float64 `yaml:"snapThreshold,omitempty"`
	// PixelsPerSecond is the initial zoom level.
	PixelsPerSecond float64 `yaml:"pixelsPerSecond,omitempty"`
}

// Default returns the configuration used when no reel.yaml exists.
func Default() Config {
	return Config{
		Playback: PlaybackConfig{FPS: 60},
		Timeline: TimelineConfig{
			DefaultClipDuration: 5,
			MinClipDuration:     0.1,
			SnapThreshold:       0.2,
			PixelsPerSecond:     100,
		},
	}
}

// LoadOptional reads reel.yaml from dir if present. A missing file yields
// the defaults; zero fields in a present file fall back to their defaults.
func LoadOptional(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, errors.Config("config.LoadOptional", err)
	}
	return Parse(data)
}

// Parse decodes a reel.yaml document, filling zero fields with defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Config("config.Parse", err)
	}
	cfg = withDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StoreOptions returns the store options this configuration prescribes.
// Pass the result to store.NewWithOptions when building the engine.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		DefaultClipDuration: c.Timeline.DefaultClipDuration,
		MinClipDuration:     c.Timeline.MinClipDuration,
	}
}

// Apply configures a player and a timeline controller from c. Either may be
// nil and is then skipped, so hosts can apply the parts they construct.
func (c Config) Apply(p *playback.Player, tc *timeline.Controller) {
	if p != nil {
		p.SetFPS(c.Playback.FPS)
		p.SetLoop(c.Playback.Loop)
	}
	if tc != nil {
		tc.SnapThreshold = c.Timeline.SnapThreshold
		tc.MinClipDuration = c.Timeline.MinClipDuration
		tc.View.PixelsPerSecond = c.Timeline.PixelsPerSecond
	}
}

func withDefaults(cfg Config) Config {
	def := Default()
	if cfg.Playback.FPS == 0 {
		cfg.Playback.FPS = def.Playback.FPS
	}
	if cfg.Timeline.DefaultClipDuration == 0 {
		cfg.Timeline.DefaultClipDuration = def.Timeline.DefaultClipDuration
	}
	if cfg.Timeline.MinClipDuration == 0 {
		cfg.Timeline.MinClipDuration = def.Timeline.MinClipDuration
	}
	if cfg.Timeline.SnapThreshold == 0 {
		cfg.Timeline.SnapThreshold = def.Timeline.SnapThreshold
	}
	if cfg.Timeline.PixelsPerSecond == 0 {
		cfg.Timeline.PixelsPerSecond = def.Timeline.PixelsPerSecond
	}
	return cfg
}

func (c Config) validate() error {
	const op = "config.Parse"
	if c.Playback.FPS < 0 {
		return errors.Config(op, fmt.Errorf("negative fps %g", c.Playback.FPS))
	}
	if c.Timeline.DefaultClipDuration < 0 || c.Timeline.MinClipDuration < 0 {
		return errors.Config(op, fmt.Errorf("negative clip duration"))
	}
	if c.Timeline.SnapThreshold < 0 {
		return errors.Config(op, fmt.Errorf("negative snap threshold %g", c.Timeline.SnapThreshold))
	}
	if c.Timeline.PixelsPerSecond < 0 {
		return errors.Config(op, fmt.Errorf("negative zoom %g", c.Timeline.PixelsPerSecond))
	}
	return nil
}
