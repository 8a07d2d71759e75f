package tens

import "math"

// SymTensor2 is a symmetric second-order tensor stored as six scalars, matching the storage
// scheme of the original dnlMaths/SymTensor2.C and gosl/tsr's symmetric index convention.
type SymTensor2 struct {
	XX, XY, XZ, YY, YZ, ZZ float64
}

// symIndex maps (i,j) with i,j in {0,1,2} to the slot of SymTensor2 holding that component,
// mirroring the index table gosl/tsr keeps for its own symmetric storage.
var symIndex = [3][3]int{
	{0, 1, 2},
	{1, 3, 4},
	{2, 4, 5},
}

// slots returns the six components in the canonical order xx,xy,xz,yy,yz,zz.
func (s SymTensor2) slots() [6]float64 {
	return [6]float64{s.XX, s.XY, s.XZ, s.YY, s.YZ, s.ZZ}
}

// At returns component (i,j).
func (s SymTensor2) At(i, j int) float64 {
	v := s.slots()
	return v[symIndex[i][j]]
}

// Full expands the symmetric storage into a full Tensor2.
func (s SymTensor2) Full() Tensor2 {
	return Tensor2{
		{s.XX, s.XY, s.XZ},
		{s.XY, s.YY, s.YZ},
		{s.XZ, s.YZ, s.ZZ},
	}
}

// FromFull builds a SymTensor2 from the symmetric part of a full tensor (off-diagonals averaged).
func FromFull(a Tensor2) SymTensor2 {
	return SymTensor2{
		XX: a[0][0],
		XY: 0.5 * (a[0][1] + a[1][0]),
		XZ: 0.5 * (a[0][2] + a[2][0]),
		YY: a[1][1],
		YZ: 0.5 * (a[1][2] + a[2][1]),
		ZZ: a[2][2],
	}
}

// Trace returns tr(S) = Sxx+Syy+Szz.
func (s SymTensor2) Trace() float64 {
	return s.XX + s.YY + s.ZZ
}

// Mean returns tr(S)/3.
func (s SymTensor2) Mean() float64 {
	return s.Trace() / 3.0
}

// Dev returns the deviator of S: S - mean(S)*I.
func (s SymTensor2) Dev() SymTensor2 {
	m := s.Mean()
	return SymTensor2{
		XX: s.XX - m,
		XY: s.XY,
		XZ: s.XZ,
		YY: s.YY - m,
		YZ: s.YZ,
		ZZ: s.ZZ - m,
	}
}

// Add returns a+b.
func (s SymTensor2) Add(b SymTensor2) SymTensor2 {
	return SymTensor2{s.XX + b.XX, s.XY + b.XY, s.XZ + b.XZ, s.YY + b.YY, s.YZ + b.YZ, s.ZZ + b.ZZ}
}

// Sub returns a-b.
func (s SymTensor2) Sub(b SymTensor2) SymTensor2 {
	return SymTensor2{s.XX - b.XX, s.XY - b.XY, s.XZ - b.XZ, s.YY - b.YY, s.YZ - b.YZ, s.ZZ - b.ZZ}
}

// Scale returns k*s.
func (s SymTensor2) Scale(k float64) SymTensor2 {
	return SymTensor2{k * s.XX, k * s.XY, k * s.XZ, k * s.YY, k * s.YZ, k * s.ZZ}
}

// Identity returns k*I as a SymTensor2 (k on the diagonal).
func Identity(k float64) SymTensor2 {
	return SymTensor2{XX: k, YY: k, ZZ: k}
}

// DoubleDot returns the double contraction S:T = sum_ij S_ij T_ij, weighting the three
// off-diagonal slots by 2 since each appears twice in the expanded 3x3 sum.
func (s SymTensor2) DoubleDot(t SymTensor2) float64 {
	return s.XX*t.XX + s.YY*t.YY + s.ZZ*t.ZZ +
		2*(s.XY*t.XY+s.XZ*t.XZ+s.YZ*t.YZ)
}

// Norm returns sqrt(S:S), the Frobenius norm.
func (s SymTensor2) Norm() float64 {
	d := s.DoubleDot(s)
	if d < 0 {
		d = 0
	}
	return math.Sqrt(d)
}
