package tens

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func tensorClose(t *testing.T, name string, a, b Tensor2, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !almostEqual(a[i][j], b[i][j], tol) {
				t.Fatalf("%s[%d][%d]: got %v want %v", name, i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestDecomposeIdentity(t *testing.T) {
	res, err := Decompose(Identity3)
	if err != nil {
		t.Fatal(err)
	}
	tensorClose(t, "R", res.R, Identity3, 1e-10)
	tensorClose(t, "U", res.U.Full(), Identity3, 1e-10)
	tensorClose(t, "lnU", res.LnU.Full(), Tensor2{}, 1e-10)
}

// TestDecomposeRoundTrip checks R*U = F and Rt*R = I within 1e-10, per §8.
func TestDecomposeRoundTrip(t *testing.T) {
	f := Tensor2{
		{1.05, 0.02, -0.01},
		{0.00, 0.97, 0.03},
		{0.01, 0.00, 1.10},
	}
	res, err := Decompose(f)
	if err != nil {
		t.Fatal(err)
	}
	ru := res.R.Mul(res.U.Full())
	tensorClose(t, "R*U", ru, f, 1e-10)

	rtr := res.R.Transpose().Mul(res.R)
	tensorClose(t, "Rt*R", rtr, Identity3, 1e-10)
}

// TestDecomposePureStretch checks that a symmetric F decomposes to R=I, U=F.
func TestDecomposePureStretch(t *testing.T) {
	f := Tensor2{
		{1.2, 0.1, 0},
		{0.1, 0.9, 0},
		{0, 0, 1.0},
	}
	res, err := Decompose(f)
	if err != nil {
		t.Fatal(err)
	}
	tensorClose(t, "R", res.R, Identity3, 1e-8)
	tensorClose(t, "U", res.U.Full(), f, 1e-8)
}

// TestDecomposePureRotation checks that an orthogonal F decomposes to R=F, U=I.
func TestDecomposePureRotation(t *testing.T) {
	theta := 0.3
	c, s := math.Cos(theta), math.Sin(theta)
	f := Tensor2{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
	res, err := Decompose(f)
	if err != nil {
		t.Fatal(err)
	}
	tensorClose(t, "U", res.U.Full(), Identity3, 1e-8)
	tensorClose(t, "R", res.R, f, 1e-8)
}

func TestSymTensorDevTrace(t *testing.T) {
	s := SymTensor2{XX: 3, YY: 1, ZZ: -1, XY: 0.5, XZ: 0.1, YZ: -0.2}
	d := s.Dev()
	if !almostEqual(d.Trace(), 0, 1e-12) {
		t.Fatalf("deviator trace should be zero, got %v", d.Trace())
	}
}
