// Package consti implements the per-integration-point constitutive update: the radial-return
// isotropic J2 plasticity model of §4.3, the element-mean (B-bar) pressure update of §4.4, and
// the co-rotational objectivity push-forward of §4.5.
package consti

import (
	"math"

	"github.com/cpmech/dynela/dynerr"
	"github.com/cpmech/dynela/ips"
	"github.com/cpmech/dynela/mat"
	"github.com/cpmech/dynela/tens"
)

const (
	sqrt23        = 0.816496580927726 // sqrt(2/3)
	sqrt32        = 1.224744871391589 // sqrt(3/2)
	gammaInit     = 1e-8
	newtonTol     = 1e-8
	newtonMaxIter = 250
)

// UpdatePressure applies the element-mean volumetric (B-bar) treatment of §4.4: the element's
// integration points share one mean volumetric strain increment trBar, and each point's pressure
// becomes p = (1/3)*tr(sigma_old) + K*trBar. Must run before UpdateStress for every IP of the
// element, since UpdateStress reassembles the new stress using the pressure stored here.
func UpdatePressure(points []ips.IntegrationPoint, K float64) {
	if len(points) == 0 {
		return
	}
	var sum float64
	for i := range points {
		sum += points[i].StrainInc.Trace()
	}
	trBar := sum / float64(len(points))
	for i := range points {
		points[i].Pressure = points[i].Stress.Trace()/3.0 + K*trBar
	}
}

// UpdateStress runs the full radial-return update of §4.3 on a single integration point. elemID
// and ipIdx are carried only for diagnostics on a non-convergent return.
func UpdateStress(ip *ips.IntegrationPoint, m *mat.Material, dt float64, elemID, ipIdx int) error {
	twoG := m.TwoG
	h := 0.0
	if m.Rho > 0 && m.Cp > 0 {
		h = m.TaylorQuinney / (m.Rho * m.Cp)
	}

	sOld := ip.Stress.Dev()
	s0 := sOld.Norm()

	sTr := sOld.Add(ip.StrainInc.Dev().Scale(twoG))
	s1 := sTr.Norm()
	sigmaTr := sqrt32 * s1

	yPrev := ip.YieldStress
	if yPrev == 0 {
		yPrev = m.Hardening.Yield(gammaInit, gammaInit/dt, ip.Temperature)
		ip.YieldStress = yPrev
	}

	var gamma float64
	var sNew tens.SymTensor2

	if sigmaTr <= yPrev {
		gamma = 0
		sNew = sTr
	} else {
		gammaMin, gammaMax := 0.0, (sigmaTr-yPrev)/(twoG*sqrt32)
		if ip.PlasticStrainScalar == 0 {
			gamma = gammaInit * sqrt32
		} else {
			gamma = ip.Gamma
		}
		if gamma < gammaMin {
			gamma = gammaMin
		}
		if gamma > gammaMax {
			gamma = gammaMax
		}

		converged := false
		var epsP, epsPDot, T, f float64
		var bracket []float64
		for iter := 0; iter < newtonMaxIter; iter++ {
			epsP = ip.PlasticStrainScalar + sqrt23*gamma
			epsPDot = sqrt23 * gamma / dt
			T = ip.Temperature + 0.5*h*gamma*(sqrt23*yPrev+s0)

			y := m.Hardening.Yield(epsP, epsPDot, T)
			dy := m.Hardening.DYieldDEpsP(epsP, epsPDot, T)

			f = sigmaTr - gamma*twoG*sqrt32 - y
			fPrime := twoG*sqrt32 + sqrt23*dy

			if f < 0 {
				gammaMax = gamma
			} else {
				gammaMin = gamma
			}
			bracket = append(bracket, gammaMin, gammaMax)

			var dGamma float64
			if fPrime != 0 {
				dGamma = f / fPrime
			} else {
				dGamma = 0
			}
			next := gamma + dGamma

			if next < gammaMin || next > gammaMax {
				next = 0.5 * (gammaMin + gammaMax)
				dGamma = next - gamma
			}

			gamma = next

			if math.Abs(dGamma) < newtonTol {
				converged = true
				break
			}
		}
		if !converged {
			err := dynerr.AtIP(dynerr.NonConvergentReturn, elemID, ipIdx, dt,
				"radial return did not converge in %d iterations (last residual=%g, bracket=[%g,%g])",
				newtonMaxIter, f, gammaMin, gammaMax)
			err.Bracket = bracket
			return err
		}

		if gamma < 0 {
			gamma = 0
		}
		if s1 > 0 {
			sNew = sTr.Scale(1 - twoG*gamma/s1)
		} else {
			sNew = sTr
		}
	}

	sigmaNew := sNew.Add(tens.Identity(ip.Pressure))
	sigmaOld := ip.Stress

	dWint := 0.5 * ip.StrainInc.DoubleDot(sigmaOld.Add(sigmaNew))
	if m.Rho > 0 {
		ip.InternalEnergy += dWint / m.Rho
	}

	if gamma > 0 {
		dEpsP := sNew.Scale(0.0)
		if s1 > 0 {
			dEpsP = sTr.Scale(gamma / s1)
		}
		ip.PlasticStrainInc = dEpsP
		ip.PlasticStrain = ip.PlasticStrain.Add(dEpsP)
		ip.PlasticStrainScalar += sqrt23 * gamma
		ip.PlasticStrainRateScalar = sqrt23 * gamma / dt
		dWp := 0.5 * gamma * (sNew.Norm() + s0)
		if m.Rho > 0 {
			ip.InelasticEnergy += dWp / m.Rho
		}
		ip.Temperature += h * dWp
		ip.YieldStress = m.Hardening.Yield(ip.PlasticStrainScalar, ip.PlasticStrainRateScalar, ip.Temperature)
	} else {
		ip.PlasticStrainInc = tens.SymTensor2{}
	}

	ip.Gamma = gamma
	ip.GammaCumulate += gamma
	ip.Stress = sigmaNew
	return nil
}

// Rotate applies the §4.5 objectivity push-forward: sigma, total strain and plastic strain are
// rotated by the step's polar-decomposition rotation R. Must run exactly once per step, after
// the constitutive update and before the next kinematic step.
func Rotate(ip *ips.IntegrationPoint) {
	ip.Stress = tens.Congruent(ip.Rotation, ip.Stress)
	ip.Strain = tens.Congruent(ip.Rotation, ip.Strain)
	ip.PlasticStrain = tens.Congruent(ip.Rotation, ip.PlasticStrain)
}
