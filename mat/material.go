// Package mat defines material data (§3 Material): elastic constants, density, thermal
// constants, and a pluggable hardening law, built from gosl/fun/dbf parameter lists the way
// mdl/solid.SmallElasticity.Init converts {E,nu}/{K,G} pairs.
package mat

import (
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/dynela/dynerr"
)

// HardeningLaw exposes the yield function and its epsP-derivative the radial-return update
// needs (§3, §4.3).
type HardeningLaw interface {
	// Yield returns y(epsP, epsPDot, T).
	Yield(epsP, epsPDot, T float64) float64
	// DYieldDEpsP returns d(yield)/d(epsP) at the same state.
	DYieldDEpsP(epsP, epsPDot, T float64) float64
}

// Material holds the elastic/thermal constants and hardening law of §3.
type Material struct {
	Name string

	E, Nu float64 // Young modulus, Poisson ratio
	K     float64 // bulk modulus
	TwoG  float64 // twice the shear modulus

	Rho           float64 // density
	Cp            float64 // specific heat
	TaylorQuinney float64 // fraction of plastic work converted to heat
	T0            float64 // initial temperature

	Hardening HardeningLaw
}

// New builds a Material from a parameter list, matching the {E,nu} / {K,G} combinations
// SmallElasticity.Init accepts, plus the thermal/hardening extras this solver needs.
func New(name string, prms dbf.Params, hardening HardeningLaw) (*Material, error) {
	m := &Material{Name: name, Hardening: hardening}
	var hasE, hasNu, hasK, hasG bool
	var g float64
	for _, p := range prms {
		switch p.N {
		case "E":
			m.E, hasE = p.V, true
		case "nu":
			m.Nu, hasNu = p.V, true
		case "K":
			m.K, hasK = p.V, true
		case "G":
			g, hasG = p.V, true
		case "rho":
			m.Rho = p.V
		case "cp":
			m.Cp = p.V
		case "tq":
			m.TaylorQuinney = p.V
		case "T0":
			m.T0 = p.V
		}
	}
	switch {
	case hasE && hasNu:
		m.K = m.E / (3 * (1 - 2*m.Nu))
		g = m.E / (2 * (1 + m.Nu))
	case hasK && hasG:
		m.E = 9 * m.K * g / (3*m.K + g)
		m.Nu = (3*m.K - 2*g) / (6*m.K + 2*g)
	default:
		return nil, dynerr.New(dynerr.InvalidMaterial,
			"material %q: elastic constants must be given as {E,nu} or {K,G}", name)
	}
	m.TwoG = 2 * g
	if m.Rho <= 0 {
		return nil, dynerr.New(dynerr.InvalidMaterial, "material %q: density must be positive", name)
	}
	if hardening == nil {
		return nil, dynerr.New(dynerr.InvalidMaterial, "material %q: hardening law is required", name)
	}
	return m, nil
}
