package model

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/dynela/elem"
	"github.com/cpmech/dynela/mat"
	"github.com/cpmech/dynela/node"
	"github.com/cpmech/dynela/shp"
	"github.com/cpmech/dynela/tens"
)

func unitCubeModel(t *testing.T) (*Model, *elem.Element) {
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
	model, err := New(nodes, []*elem.Element{e})
	if err != nil {
		t.Fatal(err)
	}
	return model, e
}

func TestNewRejectsDuplicateNodeNumbers(t *testing.T) {
	a := node.New(1, tens.Vec3{})
	b := node.New(1, tens.Vec3{1, 0, 0})
	if _, err := New([]*node.Node{a, b}, nil); err == nil {
		t.Fatal("expected an error for duplicate node numbers")
	}
}

func TestNewRejectsElementWithoutMaterial(t *testing.T) {
	mdl, e := unitCubeModel(t)
	_ = mdl
	e.Mat = nil
	if _, err := New(e.Nodes, []*elem.Element{e}); err == nil {
		t.Fatal("expected an error for an element with no bound material")
	}
}

func TestNodeByNumberAndElementByID(t *testing.T) {
	mdl, e := unitCubeModel(t)
	if mdl.NodeByNumber(3) == nil {
		t.Fatal("expected to find node 3")
	}
	if mdl.NodeByNumber(99) != nil {
		t.Fatal("expected no node 99")
	}
	if mdl.ElementByID(e.Id) != e {
		t.Fatal("ElementByID did not return the expected element")
	}
}

func TestAssembleMassConservesTotalMass(t *testing.T) {
	mdl, e := unitCubeModel(t)
	mdl.AssembleMass(false)
	var total float64
	for _, n := range mdl.Nodes {
		total += n.Mass
	}
	want := e.Mat.Rho * 8.0
	if rel := math.Abs(total-want) / want; rel > 1e-9 {
		t.Fatalf("total assembled mass = %v, want ~%v", total, want)
	}
}

func TestCourantTimestepPositive(t *testing.T) {
	mdl, _ := unitCubeModel(t)
	mdl.AssembleMass(false)
	if err := mdl.ComputeJacobians(); err != nil {
		t.Fatal(err)
	}
	dt := mdl.CourantTimestep()
	if dt <= 0 {
		t.Fatalf("expected a positive Courant timestep, got %v", dt)
	}
}

func TestAssembleInternalForcesIsZeroAtRest(t *testing.T) {
	mdl, _ := unitCubeModel(t)
	if err := mdl.ComputeJacobians(); err != nil {
		t.Fatal(err)
	}
	mdl.AssembleInternalForces()
	for i, f := range mdl.FInt {
		if f.Norm() > 1e-6 {
			t.Fatalf("node %d: expected zero internal force at rest, got %v", i, f)
		}
	}
}
