package easing

import (
	"math"
	"testing"
)

func TestBoundaryExactness(t *testing.T) {
	for _, tag := range Names() {
		if got := Evaluate(tag, 0); got != 0 {
			t.Errorf("Evaluate(%q, 0) = %g, want 0", tag, got)
		}
		if got := Evaluate(tag, 1); got != 1 {
			t.Errorf("Evaluate(%q, 1) = %g, want 1", tag, got)
		}
	}
}

func TestLinear(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := Evaluate(TagLinear, v); got != v {
			t.Errorf("linear(%g) = %g, want %g", v, got, v)
		}
	}
}

func TestQuadIn(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.25},
		{1, 1},
	}
	for _, tt := range tests {
		if got := Evaluate(TagQuadIn, tt.in); got != tt.want {
			t.Errorf("quad-in(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestUnknownTagFallsBackToLinear(t *testing.T) {
	if got := Evaluate("no-such-curve", 0.3); got != 0.3 {
		t.Errorf("unknown tag evaluated to %g, want linear 0.3", got)
	}
	if Registered("no-such-curve") {
		t.Error("unknown tag reported as registered")
	}
}

func TestRegisterCustomCurve(t *testing.T) {
	Register("test-cubic", func(p float64) float64 { return p * p * p })
	defer Register("test-cubic", nil)

	if !Registered("test-cubic") {
		t.Fatal("registered tag not found")
	}
	if got := Evaluate("test-cubic", 0.5); got != 0.125 {
		t.Errorf("test-cubic(0.5) = %g, want 0.125", got)
	}
}

func TestCubicBezierMonotoneInX(t *testing.T) {
	curve := CubicBezier(0.4, 0.0, 0.2, 1.0)
	prev := curve(0)
	for i := 1; i <= 100; i++ {
		v := curve(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("ease-in-out not monotone at t=%g: %g < %g", float64(i)/100, v, prev)
		}
		prev = v
	}
}

func TestCubicBezierClampsOutsideUnit(t *testing.T) {
	curve := CubicBezier(0.25, 0.1, 0.25, 1.0)
	if got := curve(-0.5); got != 0 {
		t.Errorf("curve(-0.5) = %g, want 0", got)
	}
	if got := curve(1.5); got != 1 {
		t.Errorf("curve(1.5) = %g, want 1", got)
	}
}

func TestOvershootCurvesStayFiniteAndExact(t *testing.T) {
	for _, tag := range []string{TagBackOut, TagElasticOut, TagBounceOut} {
		overshot := false
		for i := 0; i <= 200; i++ {
			v := Evaluate(tag, float64(i)/200)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s produced non-finite value at t=%g", tag, float64(i)/200)
			}
			if v > 1 {
				overshot = true
			}
		}
		if tag == TagBackOut && !overshot {
			t.Errorf("%s never overshot 1", tag)
		}
	}
}
