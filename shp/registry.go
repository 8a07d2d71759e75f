package shp

import "sync"

// Topology names the element tables dynela ships with.
type Topology string

const (
	Hex8             Topology = "hex8"
	Quad4Planar      Topology = "quad4planar"
	Quad4Axisym      Topology = "quad4axisym"
	Tet4             Topology = "tet4"
)

var (
	registryOnce sync.Once
	registry     map[Topology]*ElementTable
)

func buildRegistry() {
	registry = map[Topology]*ElementTable{
		Hex8:        NewHex8(),
		Quad4Planar: NewQuad4Planar(),
		Quad4Axisym: NewQuad4Axisymmetric(),
		Tet4:        NewTet4(),
	}
}

// Get returns the shared, read-only table for a topology. Returns nil for an unknown topology.
func Get(topo Topology) *ElementTable {
	registryOnce.Do(buildRegistry)
	return registry[topo]
}
