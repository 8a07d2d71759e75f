package shp

import "math"

var quad4Corners = [4][2]float64{
	{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
}

func quad4ShapeAt(xi, eta float64) ([]float64, [][]float64) {
	n := make([]float64, 4)
	dn := make([][]float64, 4)
	for i, c := range quad4Corners {
		n[i] = 0.25 * (1 + c[0]*xi) * (1 + c[1]*eta)
		dn[i] = []float64{
			0.25 * c[0] * (1 + c[1]*eta),
			0.25 * c[1] * (1 + c[0]*xi),
		}
	}
	return n, dn
}

func newQuad4(family string) *ElementTable {
	t := &ElementTable{
		Magic:   magicWord,
		Name:    "Quad4",
		Family:  family,
		Dims:    2,
		DofNode: 2,
		VTKCode: 9, // VTK_QUAD
		Nodes:   4,
	}
	for _, c := range quad4Corners {
		t.NodeCoords = append(t.NodeCoords, [3]float64{c[0], c[1], 0})
	}

	g := 1.0 / math.Sqrt(3)
	for _, c := range quad4Corners {
		xi, eta := c[0]*g, c[1]*g
		n, dn := quad4ShapeAt(xi, eta)
		t.IPs = append(t.IPs, IntegrationPoint{Coord: [3]float64{xi, eta, 0}, Weight: 1.0, N: n, DNdXi: dn})
	}

	n0, dn0 := quad4ShapeAt(0, 0)
	t.Reduced = []IntegrationPoint{{Coord: [3]float64{0, 0, 0}, Weight: 4.0, N: n0, DNdXi: dn0}}

	sqrt3 := math.Sqrt(3)
	t.ExtrapW = make([][]float64, 4)
	for i, ni := range quad4Corners {
		row := make([]float64, 4)
		for j, nj := range quad4Corners {
			row[j] = 0.25 * (1 + nj[0]*ni[0]*sqrt3) * (1 + nj[1]*ni[1]*sqrt3)
		}
		t.ExtrapW[i] = row
	}

	t.Faces = [][]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
	}
	return t
}

// NewQuad4Planar builds the table for the 4-node bilinear quadrilateral used by plane-strain
// elements.
func NewQuad4Planar() *ElementTable { return newQuad4("planar") }

// NewQuad4Axisymmetric builds the same bilinear table, tagged for the axisymmetric family so
// element kinematics select the radius-dependent hoop/mass terms.
func NewQuad4Axisymmetric() *ElementTable { return newQuad4("axisymmetric") }
