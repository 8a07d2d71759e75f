package shp

import (
	"math"
	"testing"
)

func TestHex8PartitionOfUnity(t *testing.T) {
	table := Get(Hex8)
	if !table.Validate() {
		t.Fatal("magic word mismatch")
	}
	for _, ip := range table.IPs {
		var sum float64
		for _, n := range ip.N {
			sum += n
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("shape functions do not sum to 1: %v", sum)
		}
	}
}

func TestHex8ExtrapolationRecoversLinearField(t *testing.T) {
	table := Get(Hex8)
	// a field that is exactly linear in xi is recovered exactly by extrapolation of a
	// 2-point Gauss rule (superconvergence property).
	vals := make([]float64, table.NIP())
	for j, ip := range table.IPs {
		vals[j] = 2 + 3*ip.Coord[0]
	}
	for i, coord := range table.NodeCoords {
		var got float64
		for j, w := range table.ExtrapW[i] {
			got += w * vals[j]
		}
		want := 2 + 3*coord[0]
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("node %d: got %v want %v", i, got, want)
		}
	}
}

func TestTet4SingleIP(t *testing.T) {
	table := Get(Tet4)
	if table.NIP() != 1 {
		t.Fatalf("expected 1 integration point, got %d", table.NIP())
	}
}

func TestRegistryTablesValid(t *testing.T) {
	for _, topo := range []Topology{Hex8, Quad4Planar, Quad4Axisym, Tet4} {
		tb := Get(topo)
		if tb == nil || !tb.Validate() {
			t.Fatalf("table for %v invalid", topo)
		}
	}
}
