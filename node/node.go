// Package node holds the per-node nodal state of §3: identity, current Cartesian coordinates,
// and the two-slot (current/new) field pair advanced by the explicit integrator.
package node

import "github.com/cpmech/dynela/tens"

// Fields is one slot (current or new) of a node's time-dependent state.
type Fields struct {
	Displacement      tens.Vec3
	DisplacementInc   tens.Vec3
	Velocity          tens.Vec3
	Acceleration      tens.Vec3
	ExternalForce     tens.Vec3
	Temperature       float64
	Density           float64
	InternalEnergyDot float64
}

// BoundaryCondition is the polymorphic collaborator a node may be bound to (§6). A component
// mask lets a single object pin only some axes, per the original per-DOF boundary bitmask
// (supplemented in SPEC_FULL.md from original_source/).
type BoundaryCondition interface {
	// ApplyInitial is invoked once at solver initialization.
	ApplyInitial(n *Node, t, dt float64)
	// ApplyConstant is invoked after the predictor and again after the corrector.
	ApplyConstant(n *Node, t, dt float64)
	// Mask reports which of (x,y,z) this condition constrains.
	Mask() [3]bool
}

// Node is a single mesh vertex plus its two time-stepping field slots.
type Node struct {
	Number int
	X      tens.Vec3 // current Cartesian coordinates

	slots [2]Fields
	cur   int // index into slots of the "current" field pair; "new" is the other slot

	Mass    float64
	Binding BoundaryCondition

	// Elements back-references the elements that cite this node, used only for diagnostics
	// (e.g. reporting which elements touch a degenerate node); never mutated on the hot path.
	Elements []int
}

// New allocates a node at the given number and initial position.
func New(number int, x tens.Vec3) *Node {
	return &Node{Number: number, X: x, cur: 0}
}

// Current returns the read side of the field pair.
func (n *Node) Current() *Fields { return &n.slots[n.cur] }

// New_ returns the write side of the field pair (named New_ to avoid shadowing the package-level
// constructor name New).
func (n *Node) New_() *Fields { return &n.slots[1-n.cur] }

// Swap flips current/new at end-of-step (Design Note: index flip, no heap reallocation). Only
// the driver (single-threaded) phase of the integrator calls this.
func (n *Node) Swap() { n.cur = 1 - n.cur }

// Clone copies the current slot over the new slot, the usual predictor starting point.
func (n *Node) Clone() {
	*n.New_() = *n.Current()
}
