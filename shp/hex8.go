package shp

import "math"

// hex8Corners is the standard corner sign pattern (xi,eta,zeta) in {-1,+1} for an 8-node
// trilinear brick, shared by the node table and the Gauss-point table (both live on the same
// cube topology, at different radii).
var hex8Corners = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

func hex8ShapeAt(xi, eta, zeta float64) ([]float64, [][]float64) {
	n := make([]float64, 8)
	dn := make([][]float64, 8)
	for i, c := range hex8Corners {
		n[i] = 0.125 * (1 + c[0]*xi) * (1 + c[1]*eta) * (1 + c[2]*zeta)
		dn[i] = []float64{
			0.125 * c[0] * (1 + c[1]*eta) * (1 + c[2]*zeta),
			0.125 * c[1] * (1 + c[0]*xi) * (1 + c[2]*zeta),
			0.125 * c[2] * (1 + c[0]*xi) * (1 + c[1]*eta),
		}
	}
	return n, dn
}

// NewHex8 builds the static table for the 8-node trilinear hexahedron: 2x2x2 full Gauss
// integration, 1-point reduced integration, and the extrapolation weights obtained by
// evaluating the Gauss-point-cell shape functions (corners at +-1/sqrt(3)) at the physical node
// locations, the standard superconvergent-patch extrapolation for a 2-point Gauss rule.
func NewHex8() *ElementTable {
	t := &ElementTable{
		Magic:   magicWord,
		Name:    "Hex8",
		Family:  "threedimensional",
		Dims:    3,
		DofNode: 3,
		VTKCode: 12, // VTK_HEXAHEDRON
		Nodes:   8,
	}
	for _, c := range hex8Corners {
		t.NodeCoords = append(t.NodeCoords, [3]float64{c[0], c[1], c[2]})
	}

	g := 1.0 / math.Sqrt(3)
	for _, c := range hex8Corners {
		xi, eta, zeta := c[0]*g, c[1]*g, c[2]*g
		n, dn := hex8ShapeAt(xi, eta, zeta)
		t.IPs = append(t.IPs, IntegrationPoint{Coord: [3]float64{xi, eta, zeta}, Weight: 1.0, N: n, DNdXi: dn})
	}

	n0, dn0 := hex8ShapeAt(0, 0, 0)
	t.Reduced = []IntegrationPoint{{Coord: [3]float64{0, 0, 0}, Weight: 8.0, N: n0, DNdXi: dn0}}

	sqrt3 := math.Sqrt(3)
	t.ExtrapW = make([][]float64, 8)
	for i, ni := range hex8Corners {
		row := make([]float64, 8)
		for j, nj := range hex8Corners {
			row[j] = 0.125 * (1 + nj[0]*ni[0]*sqrt3) * (1 + nj[1]*ni[1]*sqrt3) * (1 + nj[2]*ni[2]*sqrt3)
		}
		t.ExtrapW[i] = row
	}

	// quadrilateral faces, outward-consistent winding
	t.Faces = [][]int{
		{0, 3, 2, 1}, // zeta = -1
		{4, 5, 6, 7}, // zeta = +1
		{0, 1, 5, 4}, // eta = -1
		{2, 3, 7, 6}, // eta = +1
		{1, 2, 6, 5}, // xi = +1
		{0, 4, 7, 3}, // xi = -1
	}
	return t
}
