// Package elem implements per-element kinematics and services: the deformation gradient and
// Jacobian, the incremental Hencky strain via polar decomposition, internal-force and mass
// integration, characteristic length, volume and wave speed (§3 Element, §4.2).
package elem

// Family is the tagged variant selecting element-family-specific behavior (the axisymmetric
// hoop/radius terms, the volume formula) instead of a class hierarchy (Design Note).
type Family int

const (
	Planar Family = iota
	Axisymmetric
	ThreeDimensional
)

func (f Family) String() string {
	switch f {
	case Planar:
		return "planar"
	case Axisymmetric:
		return "axisymmetric"
	case ThreeDimensional:
		return "threedimensional"
	default:
		return "unknown"
	}
}
