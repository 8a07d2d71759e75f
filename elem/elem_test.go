package elem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/dynela/mat"
	"github.com/cpmech/dynela/node"
	"github.com/cpmech/dynela/shp"
	"github.com/cpmech/dynela/tens"
)

func unitHex(t *testing.T) (*Element, []*node.Node) {
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
	e, err := New(0, ThreeDimensional, table, nodes, m)
	if err != nil {
		t.Fatal(err)
	}
	return e, nodes
}

func TestRigidTranslationProducesZeroStrainIncrement(t *testing.T) {
	e, nodes := unitHex(t)
	e.BeginStep()
	for _, n := range nodes {
		n.New_().DisplacementInc = tens.Vec3{0.01, 0.02, -0.03}
	}
	if err := e.ComputeJacobian(); err != nil {
		t.Fatal(err)
	}
	if err := e.ComputeStrains(); err != nil {
		t.Fatal(err)
	}
	for i, ip := range e.IPs {
		if ip.StrainInc.Norm() > 1e-9 {
			t.Fatalf("ip %d: expected zero strain increment under rigid translation, got norm %v", i, ip.StrainInc.Norm())
		}
	}
}

func TestUniaxialStretchMatchesHenckyStrain(t *testing.T) {
	e, nodes := unitHex(t)
	e.BeginStep()
	eps := 0.001
	for _, n := range nodes {
		n.New_().DisplacementInc = tens.Vec3{eps * n.X[0], 0, 0}
	}
	if err := e.ComputeJacobian(); err != nil {
		t.Fatal(err)
	}
	if err := e.ComputeStrains(); err != nil {
		t.Fatal(err)
	}
	for i, ip := range e.IPs {
		want := math.Log(1 + eps)
		if math.Abs(ip.StrainInc.XX-want) > 1e-9 {
			t.Fatalf("ip %d: strainInc.XX = %v, want ~%v", i, ip.StrainInc.XX, want)
		}
	}
}

func TestInvertedElementIsDegenerate(t *testing.T) {
	e, nodes := unitHex(t)
	for _, n := range nodes {
		n.X = tens.Vec3{-n.X[0], -n.X[1], -n.X[2]} // mirror every node through the origin
	}
	if err := e.ComputeJacobian(); err == nil {
		t.Fatal("expected a degenerate-element error for an inverted element")
	}
}

func TestMassContributionSumsToElementMass(t *testing.T) {
	e, _ := unitHex(t)
	contrib := e.ComputeMassContribution()
	var sum float64
	for _, c := range contrib {
		sum += c
	}
	wantVolume := 8.0 // unit cube from -1..1 side 2
	want := e.Mat.Rho * wantVolume
	if rel := math.Abs(sum-want) / want; rel > 1e-9 {
		t.Fatalf("total element mass = %v, want ~%v", sum, want)
	}
}

func TestElongationWaveSpeedPositive(t *testing.T) {
	e, _ := unitHex(t)
	c := e.ElongationWaveSpeed()
	if c <= 0 {
		t.Fatalf("expected a positive wave speed, got %v", c)
	}
}
