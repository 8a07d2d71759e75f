package mat

import "math"

// LinearHardening is the textbook y = Y0 + H*epsP law (scenario 2), rate/temperature independent.
type LinearHardening struct {
	Y0 float64
	H  float64
}

func (l LinearHardening) Yield(epsP, _, _ float64) float64 { return l.Y0 + l.H*epsP }
func (l LinearHardening) DYieldDEpsP(_, _, _ float64) float64 { return l.H }

// VoceHardening saturates exponentially: y = Y0 + (Yinf-Y0)*(1-exp(-Delta*epsP)).
type VoceHardening struct {
	Y0, Yinf, Delta float64
}

func (v VoceHardening) Yield(epsP, _, _ float64) float64 {
	return v.Y0 + (v.Yinf-v.Y0)*(1-math.Exp(-v.Delta*epsP))
}

func (v VoceHardening) DYieldDEpsP(epsP, _, _ float64) float64 {
	return (v.Yinf - v.Y0) * v.Delta * math.Exp(-v.Delta*epsP)
}

// JohnsonCookHardening is the rate- and temperature-dependent law scenario 5 (Taylor impact)
// needs:
//
//	y = (A + B*epsP^n) * (1 + C*ln(max(epsPDot/epsP0Dot, 1))) * (1 - Theta^m)
//	Theta = clamp((T-Tref)/(Tmelt-Tref), 0, 1)
type JohnsonCookHardening struct {
	A, B, N    float64
	C          float64
	EpsP0Dot   float64
	M          float64
	Tref, Tmelt float64
}

func (j JohnsonCookHardening) thermalTerm(T float64) float64 {
	if j.Tmelt <= j.Tref {
		return 1
	}
	theta := (T - j.Tref) / (j.Tmelt - j.Tref)
	if theta < 0 {
		theta = 0
	}
	if theta > 1 {
		theta = 1
	}
	return 1 - math.Pow(theta, j.M)
}

func (j JohnsonCookHardening) rateTerm(epsPDot float64) float64 {
	ratio := 1.0
	if j.EpsP0Dot > 0 {
		ratio = epsPDot / j.EpsP0Dot
	}
	if ratio < 1 {
		ratio = 1
	}
	return 1 + j.C*math.Log(ratio)
}

func (j JohnsonCookHardening) Yield(epsP, epsPDot, T float64) float64 {
	epsP = math.Max(epsP, 0)
	static := j.A + j.B*math.Pow(epsP, j.N)
	return static * j.rateTerm(epsPDot) * j.thermalTerm(T)
}

func (j JohnsonCookHardening) DYieldDEpsP(epsP, epsPDot, T float64) float64 {
	epsP = math.Max(epsP, 1e-12)
	dStatic := j.B * j.N * math.Pow(epsP, j.N-1)
	return dStatic * j.rateTerm(epsPDot) * j.thermalTerm(T)
}
