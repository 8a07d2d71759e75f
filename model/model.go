// Package model owns the mesh (nodes and elements, both kept sorted by number for dichotomy
// lookup), the assembled diagonal mass and internal-force vectors, and the Courant timestep scan
// (§3 Model, §4.6). The per-step time integration itself lives in package solver; model is the
// data the integrator drives.
package model

import (
	"runtime"
	"sort"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dynela/consti"
	"github.com/cpmech/dynela/dynerr"
	"github.com/cpmech/dynela/elem"
	"github.com/cpmech/dynela/node"
	"github.com/cpmech/dynela/tens"
)

// Model is the assembled mesh plus the global vectors the explicit solver reads and writes.
type Model struct {
	Nodes    []*node.Node
	Elements []*elem.Element

	FInt []tens.Vec3 // internal-force vector, one entry per node, indexed like Nodes

	massCached bool

	CurrentTime float64
	NextTime    float64

	nodeIndex map[*node.Node]int
}

// New builds a model from already-constructed nodes and elements, sorting both by number/id for
// dichotomy lookup and validating the invariants of §3 (unique numbers, every element's nodes
// known to the model, a material bound to every element).
func New(nodes []*node.Node, elements []*elem.Element) (*Model, error) {
	m := &Model{
		Nodes:    append([]*node.Node(nil), nodes...),
		Elements: append([]*elem.Element(nil), elements...),
	}
	sort.Slice(m.Nodes, func(i, j int) bool { return m.Nodes[i].Number < m.Nodes[j].Number })
	sort.Slice(m.Elements, func(i, j int) bool { return m.Elements[i].Id < m.Elements[j].Id })

	m.nodeIndex = make(map[*node.Node]int, len(m.Nodes))
	for i, n := range m.Nodes {
		if i > 0 && m.Nodes[i-1].Number == n.Number {
			return nil, dynerr.New(dynerr.InvalidMesh, "duplicate node number %d", n.Number)
		}
		m.nodeIndex[n] = i
	}
	for i := 1; i < len(m.Elements); i++ {
		if m.Elements[i-1].Id == m.Elements[i].Id {
			return nil, dynerr.New(dynerr.InvalidMesh, "duplicate element id %d", m.Elements[i].Id)
		}
	}
	for _, e := range m.Elements {
		if e.Mat == nil {
			return nil, dynerr.New(dynerr.InvalidMaterial, "element %d has no bound material", e.Id)
		}
		for _, n := range e.Nodes {
			if _, ok := m.nodeIndex[n]; !ok {
				return nil, dynerr.New(dynerr.InvalidMesh, "element %d references a node not owned by the model", e.Id)
			}
		}
	}
	m.FInt = make([]tens.Vec3, len(m.Nodes))
	return m, nil
}

// NodeByNumber performs a dichotomy (binary) search for the node with the given number.
func (m *Model) NodeByNumber(number int) *node.Node {
	i := sort.Search(len(m.Nodes), func(i int) bool { return m.Nodes[i].Number >= number })
	if i < len(m.Nodes) && m.Nodes[i].Number == number {
		return m.Nodes[i]
	}
	return nil
}

// ElementByID performs a dichotomy search for the element with the given id.
func (m *Model) ElementByID(id int) *elem.Element {
	i := sort.Search(len(m.Elements), func(i int) bool { return m.Elements[i].Id >= id })
	if i < len(m.Elements) && m.Elements[i].Id == id {
		return m.Elements[i]
	}
	return nil
}

// nWorkers bounds the data-parallel fan-out width to the available CPUs (§5).
func nWorkers(n int) int {
	w := runtime.GOMAXPROCS(0)
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// forEachElementChunk partitions m.Elements into disjoint chunks and runs fn on each chunk from
// its own goroutine, joining before returning (§5: workers join at the end of each phase).
func (m *Model) forEachElementChunk(fn func(chunk []*elem.Element) error) error {
	n := len(m.Elements)
	if n == 0 {
		return nil
	}
	w := nWorkers(n)
	chunkSize := (n + w - 1) / w

	var wg sync.WaitGroup
	errs := make([]error, w)
	for k := 0; k < w; k++ {
		lo := k * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(k, lo, hi int) {
			defer wg.Done()
			errs[k] = fn(m.Elements[lo:hi])
		}(k, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// AssembleMass computes each node's lumped mass as the sum of its elements' mass contributions
// (§4.2, §4.6). The result is cached; pass force=true to recompute after a mesh change.
func (m *Model) AssembleMass(force bool) {
	if m.massCached && !force {
		return
	}
	for _, n := range m.Nodes {
		n.Mass = 0
	}
	for _, e := range m.Elements {
		contrib := e.ComputeMassContribution()
		for i, nd := range e.Nodes {
			nd.Mass += contrib[i]
		}
	}
	for _, n := range m.Nodes {
		if n.Mass <= 0 {
			chk.Panic("node %d has non-positive assembled mass %v -- degenerate or disconnected mesh", n.Number, n.Mass)
		}
	}
	m.massCached = true
}

// ComputeJacobians runs ComputeJacobian on every element (§4.2 phase "Jacobian"), fanned out
// across goroutines (§5). Must run before ComputeStrains and before AssembleInternalForces in
// the same step, since both depend on the current-configuration spatial gradients it caches.
func (m *Model) ComputeJacobians() error {
	return m.forEachElementChunk(func(chunk []*elem.Element) error {
		for _, e := range chunk {
			if err := e.ComputeJacobian(); err != nil {
				return err
			}
		}
		return nil
	})
}

// ComputeStrains runs ComputeStrains on every element (§4.2 phase "Strains"), fanned out across
// goroutines (§5).
func (m *Model) ComputeStrains() error {
	return m.forEachElementChunk(func(chunk []*elem.Element) error {
		for _, e := range chunk {
			if err := e.ComputeStrains(); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePressureAndStress runs the §4.4 element-mean pressure update followed by the §4.3
// radial-return constitutive update at every integration point, fanned out across goroutines
// (§5, phases "Pressure"/"Stress"). Must run after ComputeStrains in the same step.
func (m *Model) UpdatePressureAndStress(dt float64) error {
	return m.forEachElementChunk(func(chunk []*elem.Element) error {
		for _, e := range chunk {
			consti.UpdatePressure(e.IPs, e.Mat.K)
			for ipIdx := range e.IPs {
				if err := consti.UpdateStress(&e.IPs[ipIdx], e.Mat, dt, e.Id, ipIdx); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ApplyObjectivityRotation runs the §4.5 co-rotational push-forward at every integration point.
// Must run after UpdatePressureAndStress and before the next step's ComputeStrains.
func (m *Model) ApplyObjectivityRotation() {
	_ = m.forEachElementChunk(func(chunk []*elem.Element) error {
		for _, e := range chunk {
			for ipIdx := range e.IPs {
				consti.Rotate(&e.IPs[ipIdx])
			}
		}
		return nil
	})
}

// UpdateDensities runs the §4.7 step-10 density update at every element.
func (m *Model) UpdateDensities() {
	_ = m.forEachElementChunk(func(chunk []*elem.Element) error {
		for _, e := range chunk {
			e.UpdateDensity()
		}
		return nil
	})
}

// AssembleInternalForces zeros FInt and scatter-adds every element's local internal-force
// contribution into it, fanning the per-element computation out across goroutines with private
// per-worker accumulators merged at the end of the phase (§4.6, §5). Must run after
// ComputeJacobians in the same step so the current-configuration gradients are fresh.
func (m *Model) AssembleInternalForces() {
	for i := range m.FInt {
		m.FInt[i] = tens.Vec3{}
	}

	type partial struct {
		idx []int
		f   []tens.Vec3
	}
	results := make(chan partial, nWorkers(len(m.Elements))+1)

	_ = m.forEachElementChunk(func(chunk []*elem.Element) error {
		var idx []int
		var fs []tens.Vec3
		for _, e := range chunk {
			e.ComputeInternalForces(func(localIdx int, f tens.Vec3) {
				idx = append(idx, m.nodeIndex[e.Nodes[localIdx]])
				fs = append(fs, f)
			})
		}
		results <- partial{idx: idx, f: fs}
		return nil
	})
	close(results)
	for p := range results {
		for i, gidx := range p.idx {
			m.FInt[gidx] = m.FInt[gidx].Add(p.f[i])
		}
	}
}

// CourantTimestep returns min_e(characteristicLength_e / waveSpeed_e) over every element, the
// critical explicit timestep before the caller applies its own safety factor (§4.7).
func (m *Model) CourantTimestep() float64 {
	dt := make([]float64, len(m.Elements))
	_ = m.forEachElementChunk(func(chunk []*elem.Element) error {
		for _, e := range chunk {
			c := e.ElongationWaveSpeed()
			l := e.CharacteristicLength()
			i := m.elementPosition(e)
			if c > 0 && l > 0 {
				dt[i] = l / c
			}
		}
		return nil
	})
	min := -1.0
	for _, d := range dt {
		if d <= 0 {
			continue
		}
		if min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// elementPosition finds an element's index in m.Elements via dichotomy on its id.
func (m *Model) elementPosition(e *elem.Element) int {
	i := sort.Search(len(m.Elements), func(i int) bool { return m.Elements[i].Id >= e.Id })
	return i
}

// BoundingBox returns the current (not reference) min/max Cartesian corners over every node.
func (m *Model) BoundingBox() (lo, hi tens.Vec3) {
	if len(m.Nodes) == 0 {
		return
	}
	lo, hi = m.Nodes[0].X, m.Nodes[0].X
	for _, n := range m.Nodes[1:] {
		for d := 0; d < 3; d++ {
			if n.X[d] < lo[d] {
				lo[d] = n.X[d]
			}
			if n.X[d] > hi[d] {
				hi[d] = n.X[d]
			}
		}
	}
	return
}
