// Package ips holds per-integration-point mutable state as flat value records (Design Note:
// not heap-chained objects with back-pointers into the element table). An element owns a
// []IntegrationPoint indexed by quadrature ordinal; the matching shp.ElementTable row is found
// by the same ordinal, not by pointer.
package ips

import "github.com/cpmech/dynela/tens"

// IntegrationPoint is the per-quadrature-point state of §3.
type IntegrationPoint struct {
	Stress SymTensor2Alias

	Strain           SymTensor2Alias
	StrainInc        SymTensor2Alias
	PlasticStrain    SymTensor2Alias
	PlasticStrainInc SymTensor2Alias

	Rotation tens.Tensor2 // R from the last polar decomposition

	PlasticStrainScalar     float64 // cumulative equivalent plastic strain, epsP
	PlasticStrainRateScalar float64 // epsPDot
	YieldStress             float64
	Temperature             float64
	Density                 float64
	Pressure                float64
	InternalEnergy          float64
	InelasticEnergy         float64
	Gamma                   float64 // last plastic multiplier
	GammaCumulate           float64

	DetJ  float64 // current Jacobian determinant
	DetJ0 float64 // reference Jacobian (x radius, for axisymmetric)
}

// SymTensor2Alias is tens.SymTensor2; aliased locally so field declarations above read cleanly
// without repeating the tens. qualifier on every line.
type SymTensor2Alias = tens.SymTensor2

// New allocates a single integration point's state, seeding density and an identity rotation.
func New(rho0 float64) IntegrationPoint {
	return IntegrationPoint{
		Density:  rho0,
		Rotation: tens.Identity3,
		DetJ:     1,
		DetJ0:    1,
	}
}

// NewSlice allocates n integration points for an element, all seeded from rho0.
func NewSlice(n int, rho0 float64) []IntegrationPoint {
	out := make([]IntegrationPoint, n)
	for i := range out {
		out[i] = New(rho0)
	}
	return out
}
