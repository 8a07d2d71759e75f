// Package tens implements the small-tensor algebra the explicit solver is built on: 3-vectors,
// full 3x3 tensors, symmetric 2-tensors stored as six scalars, and the Jacobi-rotation polar
// decomposition used by element kinematics.
package tens

import "math"

// Vec3 is a dense 3-component vector (x, y, z). 2D problems use the first two slots and leave
// z at zero, matching the "3D storage used for 2D as well" convention of the node/IP data model.
type Vec3 [3]float64

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns s*a.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{s * a[0], s * a[1], s * a[2]}
}

// Dot returns a·b.
func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Norm returns the Euclidean length of a.
func (a Vec3) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Outer returns the dyadic product a⊗b as a full Tensor2.
func (a Vec3) Outer(b Vec3) Tensor2 {
	var t Tensor2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[i] * b[j]
		}
	}
	return t
}
