package tens

// Tensor2 is a full, generally non-symmetric, 3x3 second-order tensor stored row-major.
type Tensor2 [3][3]float64

// Identity3 is the 3x3 identity tensor.
var Identity3 = Tensor2{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// Trace returns tr(A) = sum_i A_ii.
func (a Tensor2) Trace() float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// Mean returns tr(A)/3, the "third-trace".
func (a Tensor2) Mean() float64 {
	return a.Trace() / 3.0
}

// Transpose returns Aᵀ.
func (a Tensor2) Transpose() Tensor2 {
	var t Tensor2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[j][i]
		}
	}
	return t
}

// Add returns a+b.
func (a Tensor2) Add(b Tensor2) Tensor2 {
	var t Tensor2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[i][j] + b[i][j]
		}
	}
	return t
}

// Sub returns a-b.
func (a Tensor2) Sub(b Tensor2) Tensor2 {
	var t Tensor2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[i][j] - b[i][j]
		}
	}
	return t
}

// Scale returns s*a.
func (a Tensor2) Scale(s float64) Tensor2 {
	var t Tensor2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = s * a[i][j]
		}
	}
	return t
}

// Mul returns the matrix product a*b.
func (a Tensor2) Mul(b Tensor2) Tensor2 {
	var t Tensor2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			t[i][j] = s
		}
	}
	return t
}

// MulVec returns a*v.
func (a Tensor2) MulVec(v Vec3) Vec3 {
	var r Vec3
	for i := 0; i < 3; i++ {
		r[i] = a[i][0]*v[0] + a[i][1]*v[1] + a[i][2]*v[2]
	}
	return r
}

// DoubleDot returns the double contraction A:B = sum_ij A_ij B_ij.
func (a Tensor2) DoubleDot(b Tensor2) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += a[i][j] * b[i][j]
		}
	}
	return s
}

// Det returns det(A).
func (a Tensor2) Det() float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inverse returns A^-1. Caller must ensure det(A) != 0.
func (a Tensor2) Inverse() Tensor2 {
	d := a.Det()
	inv := 1.0 / d
	var t Tensor2
	t[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * inv
	t[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * inv
	t[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv
	t[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) * inv
	t[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv
	t[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * inv
	t[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * inv
	t[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * inv
	t[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv
	return t
}

// SymSkew returns the symmetric and skew-symmetric parts of a: a = sym + skew.
func (a Tensor2) SymSkew() (sym SymTensor2, skew Tensor2) {
	sym = SymTensor2{
		XX: a[0][0],
		XY: 0.5 * (a[0][1] + a[1][0]),
		XZ: 0.5 * (a[0][2] + a[2][0]),
		YY: a[1][1],
		YZ: 0.5 * (a[1][2] + a[2][1]),
		ZZ: a[2][2],
	}
	full := sym.Full()
	skew = a.Sub(full)
	return
}

// Congruent returns R·S·Rᵀ for a symmetric S, returning a symmetric result (closed form,
// used by the §4.5 objectivity push-forward: σ ← R σ Rᵀ).
func Congruent(r Tensor2, s SymTensor2) SymTensor2 {
	full := r.Mul(s.Full()).Mul(r.Transpose())
	sym, _ := full.SymSkew()
	return sym
}
