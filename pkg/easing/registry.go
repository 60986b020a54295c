package easing

import (
	"sort"
	"sync"

	"github.com/tanema/gween/ease"
)

// Tags of the built-in curves.
const (
	TagLinear     = "linear"
	TagEase       = "ease"
	TagEaseIn     = "ease-in"
	TagEaseOut    = "ease-out"
	TagEaseInOut  = "ease-in-out"
	TagQuadIn     = "quad-in"
	TagQuadOut    = "quad-out"
	TagBounceIn   = "bounce-in"
	TagBounceOut  = "bounce-out"
	TagElasticIn  = "elastic-in"
	TagElasticOut = "elastic-out"
	TagBackIn     = "back-in"
	TagBackOut    = "back-out"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Curve{
		TagLinear:     Linear,
		TagEase:       Ease,
		TagEaseIn:     EaseIn,
		TagEaseOut:    EaseOut,
		TagEaseInOut:  EaseInOut,
		TagQuadIn:     QuadIn,
		TagQuadOut:    QuadOut,
		TagBounceIn:   fromGween(ease.InBounce),
		TagBounceOut:  fromGween(ease.OutBounce),
		TagElasticIn:  fromGween(ease.InElastic),
		TagElasticOut: fromGween(ease.OutElastic),
		TagBackIn:     fromGween(ease.InBack),
		TagBackOut:    fromGween(ease.OutBack),
	}
)

// fromGween adapts a gween easing function to a Curve over normalized
// progress. The boundaries are pinned exactly so the boundary-exactness
// invariant survives the float32 round trip.
func fromGween(fn ease.TweenFunc) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Register adds or replaces a named curve. Registering a nil curve removes
// the tag. Tags used by stored keyframes should stay registered for the
// lifetime of the process.
func Register(tag string, c Curve) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if c == nil {
		delete(registry, tag)
		return
	}
	registry[tag] = c
}

// Registered reports whether a curve is registered under tag.
func Registered(tag string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[tag]
	return ok
}

// Names returns the sorted tags of all registered curves.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for tag := range registry {
		names = append(names, tag)
	}
	sort.Strings(names)
	return names
}

// Evaluate applies the curve registered under tag to t. Unknown tags
// evaluate as linear so playback of data holding a stale tag never fails;
// use [Registered] to validate tags at edit time.
func Evaluate(tag string, t float64) float64 {
	registryMu.RLock()
	c, ok := registry[tag]
	registryMu.RUnlock()
	if !ok {
		return Linear(t)
	}
	return c(t)
}
