package engine_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-reel/reel/pkg/engine"
	"github.com/go-reel/reel/pkg/graphics"
	"github.com/go-reel/reel/pkg/store"
	reeltesting "github.com/go-reel/reel/pkg/testing"
	"github.com/go-reel/reel/pkg/track"
)

func ptr[T any](v T) *T { return &v }

type staticDefaults map[string]map[track.Property]track.Value

func (d staticDefaults) DefaultValue(elementID string, p track.Property) (track.Value, bool) {
	v, ok := d[elementID][p]
	return v, ok
}

// newStore builds a store with one element whose opacity fades 0 to 100
// over the first two local seconds.
func newStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.NewWithOptions(store.Options{NewID: reeltesting.SequentialIDs()})
	if _, err := st.InitAnimation("el-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddKeyframe("el-1", track.PropOpacity, 0, track.Numeric(0), "linear"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddKeyframe("el-1", track.PropOpacity, 2, track.Numeric(100), "linear"); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestLiveValueMapsMasterToLocalTime(t *testing.T) {
	st := newStore(t)
	// Clip at 3s running double speed: master 3.5 is local 1.0.
	if err := st.UpdateClip("el-1", store.ClipPatch{Start: ptr(3.0), Speed: ptr(2.0)}); err != nil {
		t.Fatal(err)
	}
	e := engine.New(st)

	v, ok := e.LiveValue("el-1", track.PropOpacity, 3.5)
	if !ok {
		t.Fatal("no value")
	}
	if math.Abs(v.Num-50) > 1e-9 {
		t.Errorf("opacity = %g, want 50", v.Num)
	}

	// Before the clip starts, local time is negative and clamps to the
	// first keyframe.
	v, _ = e.LiveValue("el-1", track.PropOpacity, 0)
	if v.Num != 0 {
		t.Errorf("opacity before clip = %g, want 0", v.Num)
	}
}

func TestLiveValueMutedAndUnknown(t *testing.T) {
	st := newStore(t)
	e := engine.New(st)

	if _, ok := e.LiveValue("nope", track.PropOpacity, 1); ok {
		t.Error("unknown element reported a value")
	}
	if err := st.UpdateClip("el-1", store.ClipPatch{Muted: ptr(true)}); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.LiveValue("el-1", track.PropOpacity, 1); ok {
		t.Error("muted element reported a value")
	}
	if e.ElementValues("el-1", 1) != nil {
		t.Error("muted element reported values")
	}
}

func TestLiveValueDefaultsFallback(t *testing.T) {
	st := newStore(t)
	e := engine.New(st)
	e.Defaults = staticDefaults{
		"el-1": {track.PropWidth: track.Numeric(200)},
	}

	// No keyframes on width: the element's static value applies.
	v, ok := e.LiveValue("el-1", track.PropWidth, 1)
	if !ok || v.Num != 200 {
		t.Errorf("width = (%v, %v), want default 200", v, ok)
	}
	// No keyframes and no default either.
	if _, ok := e.LiveValue("el-1", track.PropRotation, 1); ok {
		t.Error("value reported with neither keyframes nor default")
	}
	// Keyframed properties ignore the default.
	e.Defaults = staticDefaults{
		"el-1": {track.PropOpacity: track.Numeric(-1)},
	}
	v, _ = e.LiveValue("el-1", track.PropOpacity, 1)
	if v.Num != 50 {
		t.Errorf("opacity = %g, want keyframed 50 over the default", v.Num)
	}
}

func TestEvaluateFrame(t *testing.T) {
	st := newStore(t)
	if _, err := st.InitAnimation("el-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddKeyframe("el-2", track.PropFillColor, 0, track.ColorOf(graphics.ColorBlack), "linear"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.InitAnimation("el-muted"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddKeyframe("el-muted", track.PropOpacity, 0, track.Numeric(1), "linear"); err != nil {
		t.Fatal(err)
	}
	if err := st.UpdateClip("el-muted", store.ClipPatch{Muted: ptr(true)}); err != nil {
		t.Fatal(err)
	}
	e := engine.New(st)

	frame := e.EvaluateFrame(1)
	if len(frame) != 2 {
		t.Fatalf("frame has %d elements, want 2", len(frame))
	}
	if _, ok := frame["el-muted"]; ok {
		t.Error("muted element present in frame")
	}
	if got := frame["el-1"][track.PropOpacity].Num; got != 50 {
		t.Errorf("el-1 opacity = %g, want 50", got)
	}
	if got := frame["el-2"][track.PropFillColor].Color; got != graphics.ColorBlack {
		t.Errorf("el-2 fill = %v, want black", got)
	}
}

func TestEvaluateFrameParallelMatchesSerial(t *testing.T) {
	st := store.NewWithOptions(store.Options{NewID: reeltesting.SequentialIDs()})
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		if _, err := st.InitAnimation(id); err != nil {
			t.Fatal(err)
		}
		for k := 0; k < 4; k++ {
			at := float64(k)
			if _, err := st.AddKeyframe(id, track.PropPositionX, at, track.Numeric(at*float64(i+1)), "ease-in-out"); err != nil {
				t.Fatal(err)
			}
		}
		start := float64(i) * 0.5
		if err := st.UpdateClip(id, store.ClipPatch{Start: &start}); err != nil {
			t.Fatal(err)
		}
	}

	serial := engine.New(st)
	parallel := engine.New(st)
	parallel.Parallelism = 4

	for _, at := range []float64{0, 0.7, 1.5, 2.25, 10} {
		a, b := serial.EvaluateFrame(at), parallel.EvaluateFrame(at)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("frames diverge at t=%g:\nserial   %v\nparallel %v", at, a, b)
		}
	}
}
