package mat

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun/dbf"
)

func TestNewFromEnu(t *testing.T) {
	m, err := New("steel", dbf.Params{
		{N: "E", V: 210e9},
		{N: "nu", V: 0.3},
		{N: "rho", V: 7800},
	}, LinearHardening{Y0: 300e6, H: 1e9})
	if err != nil {
		t.Fatal(err)
	}
	wantK := 210e9 / (3 * (1 - 2*0.3))
	if math.Abs(m.K-wantK)/wantK > 1e-9 {
		t.Fatalf("K = %v, want %v", m.K, wantK)
	}
	wantG := 210e9 / (2 * 1.3)
	if math.Abs(m.TwoG/2-wantG)/wantG > 1e-9 {
		t.Fatalf("G = %v, want %v", m.TwoG/2, wantG)
	}
}

func TestNewMissingElasticPair(t *testing.T) {
	_, err := New("bad", dbf.Params{{N: "E", V: 1}}, LinearHardening{})
	if err == nil {
		t.Fatal("expected error for incomplete elastic constants")
	}
}

func TestLinearHardening(t *testing.T) {
	h := LinearHardening{Y0: 300e6, H: 1e9}
	if h.Yield(0.01, 0, 0) != 300e6+1e9*0.01 {
		t.Fatal("linear hardening formula mismatch")
	}
	if h.DYieldDEpsP(0.01, 0, 0) != 1e9 {
		t.Fatal("linear hardening derivative mismatch")
	}
}

func TestVoceHardeningSaturates(t *testing.T) {
	h := VoceHardening{Y0: 100, Yinf: 500, Delta: 10}
	y0 := h.Yield(0, 0, 0)
	if math.Abs(y0-100) > 1e-9 {
		t.Fatalf("y(0) = %v, want 100", y0)
	}
	yLarge := h.Yield(10, 0, 0)
	if math.Abs(yLarge-500) > 1e-6 {
		t.Fatalf("y(large) = %v, want ~500", yLarge)
	}
}

func TestJohnsonCookMonotoneInRateAndTemp(t *testing.T) {
	jc := JohnsonCookHardening{A: 90e6, B: 292e6, N: 0.31, C: 0.025, EpsP0Dot: 1, M: 1.09, Tref: 293, Tmelt: 1356}
	base := jc.Yield(0.1, 1, 293)
	faster := jc.Yield(0.1, 1000, 293)
	if faster <= base {
		t.Fatalf("yield should increase with rate: base=%v faster=%v", base, faster)
	}
	hotter := jc.Yield(0.1, 1, 1000)
	if hotter >= base {
		t.Fatalf("yield should decrease with temperature: base=%v hotter=%v", base, hotter)
	}
}
