package shp

// tet4 uses natural (volume) coordinates L1..L4 with L4 = 1-L1-L2-L3; shape functions are the
// coordinates themselves, constant gradients. Node 0 sits at the parametric origin (L4 = 1) and
// nodes 1..3 at the unit points of L1..L3, so node i's shape function is 1 at NodeCoords[i].

func tet4ShapeAt(l1, l2, l3 float64) ([]float64, [][]float64) {
	l4 := 1 - l1 - l2 - l3
	n := []float64{l4, l1, l2, l3}
	dn := [][]float64{
		{-1, -1, -1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	return n, dn
}

// NewTet4 builds the table for the 4-node linear tetrahedron: a single interior integration
// point (centroid, weight = volume of the reference tetrahedron = 1/6), which is simultaneously
// the full and reduced rule since a linear tetrahedron has constant strain.
func NewTet4() *ElementTable {
	t := &ElementTable{
		Magic:   magicWord,
		Name:    "Tet4",
		Family:  "threedimensional",
		Dims:    3,
		DofNode: 3,
		VTKCode: 10, // VTK_TETRA
		Nodes:   4,
	}
	t.NodeCoords = [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	n, dn := tet4ShapeAt(0.25, 0.25, 0.25)
	ip := IntegrationPoint{Coord: [3]float64{0.25, 0.25, 0.25}, Weight: 1.0 / 6.0, N: n, DNdXi: dn}
	t.IPs = []IntegrationPoint{ip}
	t.Reduced = []IntegrationPoint{ip}

	// a linear tet's single integration-point value is exact over the whole element: every
	// node receives it with unit weight.
	t.ExtrapW = [][]float64{{1}, {1}, {1}, {1}}

	t.Faces = [][]int{
		{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2},
	}
	return t
}
