package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/dynela/config"
	"github.com/cpmech/dynela/elem"
	"github.com/cpmech/dynela/mat"
	"github.com/cpmech/dynela/model"
	"github.com/cpmech/dynela/node"
	"github.com/cpmech/dynela/shp"
	"github.com/cpmech/dynela/tens"
)

func unitCubeModel(t *testing.T) *model.Model {
	t.Helper()
	table := shp.Get(shp.Hex8)
	nodes := make([]*node.Node, 8)
	for i, c := range table.NodeCoords {
		nodes[i] = node.New(i, tens.Vec3{c[0], c[1], c[2]})
	}
	m, err := mat.New("steel", dbf.Params{
		{N: "E", V: 210e9}, {N: "nu", V: 0.3}, {N: "rho", V: 7800},
	}, mat.LinearHardening{Y0: 1e20, H: 0})
	if err != nil {
		t.Fatal(err)
	}
	e, err := elem.New(0, elem.ThreeDimensional, table, nodes, m)
	if err != nil {
		t.Fatal(err)
	}
	mdl, err := model.New(nodes, []*elem.Element{e})
	if err != nil {
		t.Fatal(err)
	}
	return mdl
}

func TestCoefficientsMatchChungHulbertFormulas(t *testing.T) {
	e, err := New(config.SolverConfig{RhoB: 0.8182, TStart: 0, TEnd: 1, SafetyFactor: 0.8})
	if err != nil {
		t.Fatal(err)
	}
	rb := 0.8182
	wantAlphaM := (2*rb - 1) / (1 + rb)
	if math.Abs(e.alphaM-wantAlphaM) > 1e-12 {
		t.Fatalf("alphaM = %v, want %v", e.alphaM, wantAlphaM)
	}
	wantGamma := 1.5 - wantAlphaM
	if math.Abs(e.gamma-wantGamma) > 1e-12 {
		t.Fatalf("gamma = %v, want %v", e.gamma, wantGamma)
	}
	if e.beta <= 0 {
		t.Fatalf("beta should be positive, got %v", e.beta)
	}
	if e.omegaS <= 0 {
		t.Fatalf("omegaS should be positive, got %v", e.omegaS)
	}
}

func TestNewRejectsOutOfRangeConfig(t *testing.T) {
	if _, err := New(config.SolverConfig{RhoB: 1.5, TEnd: 1, SafetyFactor: 0.8}); err == nil {
		t.Fatal("expected an error for rho_b outside [0,1]")
	}
}

// TestFreeFlightRigidTranslation drives an unconstrained cube at a constant initial velocity
// with zero initial stress for a handful of steps and checks it coasts at (approximately)
// constant velocity with no internal force developing (no strain under rigid motion).
func TestFreeFlightRigidTranslation(t *testing.T) {
	mdl := unitCubeModel(t)
	for _, n := range mdl.Nodes {
		n.Current().Velocity = tens.Vec3{1.0, 0, 0}
	}

	s, err := New(config.SolverConfig{RhoB: 0.8182, TStart: 0, TEnd: 1e-3, SafetyFactor: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	report, err := s.Solve(mdl, 5e-6, nil, t.TempDir()+"/emergency")
	if err != nil {
		t.Fatal(err)
	}
	if report.Steps == 0 {
		t.Fatal("expected at least one accepted step")
	}
	for _, n := range mdl.Nodes {
		v := n.Current().Velocity
		if math.Abs(v[0]-1.0) > 1e-6 {
			t.Fatalf("node %d: velocity drifted under free flight: %v", n.Number, v)
		}
		if math.Abs(v[1]) > 1e-9 || math.Abs(v[2]) > 1e-9 {
			t.Fatalf("node %d: spurious transverse velocity: %v", n.Number, v)
		}
	}
}
