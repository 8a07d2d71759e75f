package elem

import (
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/dynela/dynerr"
	"github.com/cpmech/dynela/ips"
	"github.com/cpmech/dynela/mat"
	"github.com/cpmech/dynela/node"
	"github.com/cpmech/dynela/shp"
	"github.com/cpmech/dynela/tens"
)

// Element couples one shp.ElementTable (shared, immutable, looked up by topology) with its own
// nodes, material and per-integration-point state (§3 Element). The table is referenced, never
// copied; IPs are owned value storage, not pointers into a shared pool (Design Note).
type Element struct {
	Id     int
	Family Family
	Table  *shp.ElementTable
	Nodes  []*node.Node
	Mat    *mat.Material
	IPs    []ips.IntegrationPoint

	refX       [][3]float64 // nodal coordinates at construction time, fixed for the element's life
	stepStartX [][3]float64 // nodal coordinates snapshotted at BeginStep, used by ComputeStrains

	// scratch populated by ComputeJacobian and consumed by ComputeStrains/ComputeInternalForces
	// within the same step; never read before ComputeJacobian runs.
	curDetJ []float64      // det(dx/dxi) at the current configuration, one per ip
	curDNdx [][][3]float64 // dN_I/dx, Nodes entries per ip
}

// New builds an element from its table, ordered node list and material, seeding per-ip state at
// the material's reference density and capturing the reference (initial) nodal coordinates used
// by ComputeJacobian's total deformation gradient.
func New(id int, family Family, table *shp.ElementTable, nodes []*node.Node, m *mat.Material) (*Element, error) {
	if !table.Validate() {
		return nil, dynerr.New(dynerr.InvalidMesh, "element %d: shape table %q failed magic-word validation", id, table.Name)
	}
	if len(nodes) != table.Nodes {
		return nil, dynerr.New(dynerr.InvalidMesh, "element %d: table %q wants %d nodes, got %d", id, table.Name, table.Nodes, len(nodes))
	}
	e := &Element{
		Id:     id,
		Family: family,
		Table:  table,
		Nodes:  nodes,
		Mat:    m,
		IPs:    ips.NewSlice(table.NIP(), m.Rho),
	}
	e.refX = make([][3]float64, len(nodes))
	for i, n := range nodes {
		e.refX[i] = n.X
	}
	e.stepStartX = append([][3]float64(nil), e.refX...)
	e.seedReferenceJacobians()
	return e, nil
}

// BeginStep snapshots the current nodal coordinates as the "start of step" configuration that
// ComputeStrains measures its incremental deformation gradient against.
func (e *Element) BeginStep() {
	for i, n := range e.Nodes {
		e.stepStartX[i] = n.X
	}
}

// embed packs a dims x dims block into a 3x3 tensor, padding the remaining diagonal with 1 so
// that Det and Inverse of the padded tensor equal the submatrix's Det and Inverse exactly (the
// extra rows/cols are an identity block).
func embed(dims int, sub [3][3]float64) tens.Tensor2 {
	t := tens.Identity3
	for i := 0; i < dims; i++ {
		for j := 0; j < dims; j++ {
			t[i][j] = sub[i][j]
		}
	}
	return t
}

// isoJacobian computes J_jk = dx_j/dxi_k = sum_I coords[I][j]*dNdXi[I][k] at one integration
// point, from a set of nodal coordinates and the table's parametric shape gradients.
func isoJacobian(dims int, coords [][3]float64, dNdXi [][]float64) tens.Tensor2 {
	var sub [3][3]float64
	for j := 0; j < dims; j++ {
		for k := 0; k < dims; k++ {
			var s float64
			for i := range coords {
				s += coords[i][j] * dNdXi[i][k]
			}
			sub[j][k] = s
		}
	}
	return embed(dims, sub)
}

// spatialGradients returns dN_I/dx_j = sum_k Jinv[k][j]*dN_I/dxi_k, one 3-vector per node (the
// unused trailing components are zero for Dims==2 topologies).
func spatialGradients(dims int, jinv tens.Tensor2, dNdXi [][]float64) [][3]float64 {
	out := make([][3]float64, len(dNdXi))
	for i := range dNdXi {
		var g [3]float64
		for j := 0; j < dims; j++ {
			var s float64
			for k := 0; k < dims; k++ {
				s += jinv[k][j] * dNdXi[i][k]
			}
			g[j] = s
		}
		out[i] = g
	}
	return out
}

// radiusAt returns the radial coordinate (component 0) interpolated by the shape functions at an
// integration point, the quantity the axisymmetric family weights its Jacobian by.
func radiusAt(coords [][3]float64, n []float64) float64 {
	var r float64
	for i, c := range coords {
		r += n[i] * c[0]
	}
	return r
}

// seedReferenceJacobians computes each ip's DetJ0 once, from the reference nodal coordinates,
// absorbing the integration-point radius for the axisymmetric family (§4.2).
func (e *Element) seedReferenceJacobians() {
	dims := e.Table.Dims
	for ipIdx, ip := range e.Table.IPs {
		j0 := isoJacobian(dims, e.refX, ip.DNdXi)
		d := j0.Det()
		if e.Family == Axisymmetric {
			d *= radiusAt(e.refX, ip.N)
		}
		e.IPs[ipIdx].DetJ0 = d
	}
}

// ComputeJacobian evaluates, at every integration point, the current isoparametric Jacobian
// determinant (stored as DetJ, the quantity UpdateDensity divides DetJ0 by) and the total
// deformation gradient F = J * J0^-1 relating the reference and current nodal coordinates, used
// only to detect inversion, and caches the current-configuration spatial gradients ComputeStrains
// and the force/mass integrals need. A non-positive det(F) means the element has inverted and is
// fatal (§4.2, §7).
func (e *Element) ComputeJacobian() error {
	dims := e.Table.Dims
	n := e.Table.NIP()
	if e.curDetJ == nil {
		e.curDetJ = make([]float64, n)
		e.curDNdx = make([][][3]float64, n)
	}

	coords := make([][3]float64, len(e.Nodes))
	for i, nd := range e.Nodes {
		coords[i] = nd.X
	}

	for ipIdx, ip := range e.Table.IPs {
		jCur := isoJacobian(dims, coords, ip.DNdXi)
		detJCur := jCur.Det()
		if detJCur <= 0 {
			return dynerr.AtIP(dynerr.DegenerateElement, e.Id, ipIdx, 0, "element %d ip %d: current Jacobian determinant %g is non-positive", e.Id, ipIdx, detJCur)
		}
		jinv := jCur.Inverse()
		e.curDetJ[ipIdx] = detJCur
		e.curDNdx[ipIdx] = spatialGradients(dims, jinv, ip.DNdXi)

		j0 := isoJacobian(dims, e.refX, ip.DNdXi)
		f := jCur.Mul(j0.Inverse())
		detF := f.Det()
		if detF <= 0 {
			return dynerr.AtIP(dynerr.DegenerateElement, e.Id, ipIdx, 0, "element %d ip %d: det(F)=%g, element has inverted", e.Id, ipIdx, detF)
		}
		e.IPs[ipIdx].DetJ = detJCur
	}
	return nil
}

// ComputeStrains evaluates the incremental deformation gradient over the current step from the
// predicted nodal displacement increment, polar-decomposes it, and stores the logarithmic strain
// increment and rotation (§4.2, §4.1). Must run after ComputeJacobian in the same step so the
// current-configuration spatial gradients are fresh. Accumulates total strain here (not in the
// constitutive update) since the increment only becomes final once this step's F is known.
func (e *Element) ComputeStrains() error {
	dims := e.Table.Dims
	for ipIdx := range e.Table.IPs {
		dNdx := e.curDNdx[ipIdx]
		var sub [3][3]float64
		for j := 0; j < dims; j++ {
			sub[j][j] = 1
		}
		for i, nd := range e.Nodes {
			du := nd.New_().DisplacementInc
			for j := 0; j < dims; j++ {
				for k := 0; k < dims; k++ {
					sub[j][k] += du[j] * dNdx[i][k]
				}
			}
		}
		fInc := embed(dims, sub)
		if e.Family == Axisymmetric {
			r := radiusAt(e.stepStartX, e.Table.IPs[ipIdx].N)
			if r > 0 {
				uR := e.interpolateRadialDispInc(ipIdx)
				fInc[2][2] = 1 + uR/r
			}
		}

		result, err := tens.Decompose(fInc)
		if err != nil {
			return dynerr.AtIP(dynerr.NonConvergentDecomposition, e.Id, ipIdx, 0, "%v", err)
		}
		e.IPs[ipIdx].StrainInc = result.LnU
		e.IPs[ipIdx].Rotation = result.R
		e.IPs[ipIdx].Strain = e.IPs[ipIdx].Strain.Add(result.LnU)
	}
	return nil
}

// interpolateRadialDispInc returns the shape-function-interpolated radial displacement increment
// at an integration point, the numerator of the axisymmetric hoop strain u_r/r.
func (e *Element) interpolateRadialDispInc(ipIdx int) float64 {
	n := e.Table.IPs[ipIdx].N
	var u float64
	for i, nd := range e.Nodes {
		u += n[i] * nd.New_().DisplacementInc[0]
	}
	return u
}

// ComputeInternalForces accumulates f_int = integral(Bᵀσ) dV over the element's integration
// points, calling add once per node with the force contribution to add to that node's internal
// force accumulator. The assembled vector itself is owned by model, not by the element.
func (e *Element) ComputeInternalForces(add func(nodeIdx int, f tens.Vec3)) {
	dims := e.Table.Dims
	coords := e.currentCoords()
	for ipIdx, ip := range e.Table.IPs {
		sigma := e.IPs[ipIdx].Stress
		planarArea := ip.Weight * e.curDetJ[ipIdx]
		dV := planarArea
		if e.Family == Axisymmetric {
			dV *= 2 * math.Pi * radiusAt(coords, ip.N)
		}
		dNdx := e.curDNdx[ipIdx]
		for i := range e.Nodes {
			var f tens.Vec3
			for j := 0; j < dims; j++ {
				var s float64
				for k := 0; k < dims; k++ {
					s += sigma.At(j, k) * dNdx[i][k]
				}
				f[j] = s * dV
			}
			if e.Family == Axisymmetric {
				// hoop term sigma_thetatheta*(N_I/r)*dV; the 1/r and the r in dV cancel.
				f[0] += sigma.At(2, 2) * ip.N[i] * planarArea * 2 * math.Pi
			}
			add(i, f)
		}
	}
}

// currentCoords returns the element's current nodal coordinates.
func (e *Element) currentCoords() [][3]float64 {
	coords := make([][3]float64, len(e.Nodes))
	for i, nd := range e.Nodes {
		coords[i] = nd.X
	}
	return coords
}

// ComputeMassContribution returns, per node of the element, the row-summed lumped mass
// contribution m_I = sum_ip rho0 * w_ip * detJ0_ip * N_I(ip) (§4.2, §4.6), times 2*pi for the
// axisymmetric family (whose detJ0 already carries the reference radius). Computed from the
// reference configuration, so it is invariant across the element's life.
func (e *Element) ComputeMassContribution() []float64 {
	out := make([]float64, len(e.Nodes))
	rho0 := e.Mat.Rho
	for ipIdx, ip := range e.Table.IPs {
		w := ip.Weight * e.IPs[ipIdx].DetJ0 * rho0
		if e.Family == Axisymmetric {
			w *= 2 * math.Pi
		}
		for i := range e.Nodes {
			out[i] += w * ip.N[i]
		}
	}
	return out
}

// UpdateDensity applies the §4.7 step-10 density update rho := rho0*detJ0/detJ at every
// integration point, additionally dividing by the current radius for the axisymmetric family.
func (e *Element) UpdateDensity() {
	coords := e.currentCoords()
	for ipIdx := range e.Table.IPs {
		ip := &e.IPs[ipIdx]
		rho := e.Mat.Rho * ip.DetJ0 / ip.DetJ
		if e.Family == Axisymmetric {
			r := radiusAt(coords, e.Table.IPs[ipIdx].N)
			if r > 0 {
				rho /= r
			}
		}
		ip.Density = rho
	}
}

// Volume returns the element's current volume by Gauss quadrature, Σ w_ip*detJ (times 2*pi*r for
// the axisymmetric family), rather than an explicit per-topology decomposition: the quadrature
// rule already integrates the current Jacobian exactly for these isoparametric shapes.
func (e *Element) Volume() float64 {
	var v float64
	coords := e.currentCoords()
	for ipIdx, ip := range e.Table.IPs {
		dV := ip.Weight * e.curDetJ[ipIdx]
		if e.Family == Axisymmetric {
			dV *= 2 * math.Pi * radiusAt(coords, ip.N)
		}
		v += dV
	}
	return v
}

// CharacteristicLength returns volume / max-face-area, the element length scale the Courant
// timestep bound uses (§4.2, §4.6).
func (e *Element) CharacteristicLength() float64 {
	v := e.Volume()
	if len(e.Table.Faces) == 0 {
		return 0
	}
	coords := e.currentCoords()
	areas := make([]float64, len(e.Table.Faces))
	for i, face := range e.Table.Faces {
		areas[i] = polygonMeasure(coords, face)
	}
	_, imax := utl.DblArgMinMax(areas)
	if areas[imax] <= 0 {
		return 0
	}
	return v / areas[imax]
}

// polygonMeasure returns a face's area (3D topologies, triangulated fan from node 0) or length
// (2D topologies, a two-node edge).
func polygonMeasure(coords [][3]float64, face []int) float64 {
	if len(face) == 2 {
		a, b := coords[face[0]], coords[face[1]]
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	var area float64
	p0 := coords[face[0]]
	cross := make([]float64, 3)
	for k := 1; k < len(face)-1; k++ {
		p1, p2 := coords[face[k]], coords[face[k+1]]
		e1 := []float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := []float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		utl.Cross3d(cross, e1, e2)
		area += 0.5 * math.Sqrt(cross[0]*cross[0]+cross[1]*cross[1]+cross[2]*cross[2])
	}
	return area
}

// ElongationWaveSpeed returns sqrt(E(1-nu) / (rhoBar(1+nu)(1-2nu))), the basis of the Courant
// critical timestep (§4.2, §4.6). rhoBar is the integration-point-averaged current density,
// which drifts from the reference density as the element compresses or expands.
func (e *Element) ElongationWaveSpeed() float64 {
	nu := e.Mat.Nu
	denom := (1 + nu) * (1 - 2*nu)
	if denom <= 0 {
		return 0
	}
	var rhoBar float64
	for _, ip := range e.IPs {
		rhoBar += ip.Density
	}
	rhoBar /= float64(len(e.IPs))
	if rhoBar <= 0 {
		return 0
	}
	return math.Sqrt(e.Mat.E * (1 - nu) / (rhoBar * denom))
}
