package weather

import (
	"math"
	"testing"
)

func TestEstimateDewPoint(t *testing.T) {
	dew, ok := EstimateDewPoint(25, 60)
	if !ok {
		t.Fatal("expected a finite dew point")
	}
	if math.Abs(dew-16.7) > 0.5 {
		t.Errorf("dew point for 25C/60%% = %.2f, want ~16.7", dew)
	}
}

func TestEstimateDewPointClampsHumidity(t *testing.T) {
	// RH of 0 would take ln out of domain; clamping to 1 keeps the result
	// finite.
	if _, ok := EstimateDewPoint(25, 0); !ok {
		t.Error("expected clamped humidity to produce a finite value")
	}
	if _, ok := EstimateDewPoint(25, -10); !ok {
		t.Error("expected negative humidity to be clamped, not rejected")
	}

	over, ok := EstimateDewPoint(25, 150)
	if !ok {
		t.Fatal("expected over-100 humidity to be clamped")
	}
	at100, _ := EstimateDewPoint(25, 100)
	if over != at100 {
		t.Errorf("150%% RH should clamp to 100%%: got %.2f want %.2f", over, at100)
	}
}

func TestEstimateDewPointRejectsNonFinite(t *testing.T) {
	if _, ok := EstimateDewPoint(math.NaN(), 60); ok {
		t.Error("NaN temperature must not produce a value")
	}
	if _, ok := EstimateDewPoint(25, math.NaN()); ok {
		t.Error("NaN humidity must not produce a value")
	}
	if _, ok := EstimateDewPoint(math.Inf(1), 60); ok {
		t.Error("infinite temperature must not produce a value")
	}
}
