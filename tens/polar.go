package tens

import (
	"math"

	"github.com/cpmech/dynela/dynerr"
)

// jacobiTol is the convergence tolerance on the largest off-diagonal magnitude of C during the
// rotation-of-axes sweep (§4.1).
const jacobiTol = 1e-10

// jacobiMaxSweeps bounds the number of Jacobi rotations (each one zeroing the current largest
// off-diagonal entry) before the decomposition is declared non-convergent.
const jacobiMaxSweeps = 30

// PolarResult holds the three forms of the symmetric stretch produced by the decomposition, plus
// the rotation.
type PolarResult struct {
	U    SymTensor2 // right stretch, U = sum sqrt(lambda_i) q_i⊗q_i
	LnU  SymTensor2 // logarithmic (Hencky) stretch, preferred by the strain update
	R    Tensor2    // rotation, R = F·U^-1
}

// Decompose computes the polar decomposition F = R·U via Jacobi rotation of C = FᵀF.
//
// C is symmetric positive-definite by construction (FᵀF for any invertible F). The sweep
// repeatedly zeros the largest off-diagonal entry of C with a planar (Givens) rotation,
// accumulating the orthogonal eigenvector matrix Q, until C becomes diagonal to tolerance. The
// diagonal entries are then the eigenvalues lambda_i of C, the columns of Q the eigenvectors q_i,
// and:
//
//	U    = sum_i sqrt(lambda_i) (q_i ⊗ q_i)
//	lnU  = sum_i (1/2 ln lambda_i) (q_i ⊗ q_i)
//	R    = F · U^-1
//
// R is obtained directly from the decomposed form (via U's eigen-expansion) rather than by a
// separate matrix inverse.
func Decompose(f Tensor2) (PolarResult, error) {
	c := f.Transpose().Mul(f)

	// eigenvector accumulator, starts as identity
	q := Identity3

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		p, qi, maxOff := largestOffDiag(c)
		if maxOff < jacobiTol {
			return buildFromEigen(f, c, q), nil
		}
		c, q = jacobiRotate(c, q, p, qi)
	}

	// one last check after the loop in case the final sweep converged exactly at the bound
	_, _, maxOff := largestOffDiag(c)
	if maxOff < jacobiTol {
		return buildFromEigen(f, c, q), nil
	}
	return PolarResult{}, dynerr.New(dynerr.NonConvergentDecomposition,
		"polar decomposition did not converge in %d sweeps (residual off-diag = %g)", jacobiMaxSweeps, maxOff)
}

// largestOffDiag returns the (row,col) of the largest-magnitude off-diagonal entry of the
// (symmetric) matrix c, and its magnitude.
func largestOffDiag(c Tensor2) (p, q int, mag float64) {
	p, q = 0, 1
	mag = math.Abs(c[0][1])
	if v := math.Abs(c[0][2]); v > mag {
		p, q, mag = 0, 2, v
	}
	if v := math.Abs(c[1][2]); v > mag {
		p, q, mag = 1, 2, v
	}
	return
}

// jacobiRotate applies one Jacobi rotation that zeros c[p][q] (and c[q][p]), returning the
// updated matrix and the updated eigenvector accumulator.
func jacobiRotate(c, v Tensor2, p, q int) (Tensor2, Tensor2) {
	if c[p][q] == 0 {
		return c, v
	}
	theta := (c[q][q] - c[p][p]) / (2 * c[p][q])
	t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(1+theta*theta))
	cs := 1 / math.Sqrt(1+t*t)
	sn := t * cs

	cNew := c
	for k := 0; k < 3; k++ {
		ckp := c[k][p]
		ckq := c[k][q]
		cNew[k][p] = cs*ckp - sn*ckq
		cNew[k][q] = sn*ckp + cs*ckq
	}
	c2 := cNew
	for k := 0; k < 3; k++ {
		pk := cNew[p][k]
		qk := cNew[q][k]
		c2[p][k] = cs*pk - sn*qk
		c2[q][k] = sn*pk + cs*qk
	}
	c2[p][q] = 0
	c2[q][p] = 0

	vNew := v
	for k := 0; k < 3; k++ {
		vkp := v[k][p]
		vkq := v[k][q]
		vNew[k][p] = cs*vkp - sn*vkq
		vNew[k][q] = sn*vkp + cs*vkq
	}
	return c2, vNew
}

// buildFromEigen assembles U, lnU and R from the diagonalized C and its eigenvector matrix q.
func buildFromEigen(f, c, q Tensor2) PolarResult {
	lambda := [3]float64{c[0][0], c[1][1], c[2][2]}

	var u, lnu, uInv Tensor2
	for i := 0; i < 3; i++ {
		li := lambda[i]
		if li < 0 {
			li = 0
		}
		sq := math.Sqrt(li)
		var ln float64
		if li > 1e-300 {
			ln = 0.5 * math.Log(li)
		}
		qi := Vec3{q[0][i], q[1][i], q[2][i]}
		dyad := qi.Outer(qi)
		u = u.Add(dyad.Scale(sq))
		lnu = lnu.Add(dyad.Scale(ln))
		if sq > 0 {
			uInv = uInv.Add(dyad.Scale(1 / sq))
		}
	}

	uSym, _ := u.SymSkew()
	lnuSym, _ := lnu.SymSkew()

	r := f.Mul(uInv)

	return PolarResult{U: uSym, LnU: lnuSym, R: r}
}
