package node

import "github.com/cpmech/dynela/tens"

// Dirichlet prescribes a (possibly time-varying) velocity on a per-axis mask, replacing the
// heavier Lagrange-multiplier boundary machinery of the teacher's essential-BC package with the
// simpler per-DOF bitmask of the original implementation (§6, supplemented from original_source).
type Dirichlet struct {
	Masked  [3]bool
	Value   tens.Vec3          // prescribed velocity on the masked axes
	ValueAt func(t float64) tens.Vec3 // optional time-varying override; nil uses Value
}

func (d Dirichlet) Mask() [3]bool { return d.Masked }

func (d Dirichlet) velocityAt(t float64) tens.Vec3 {
	if d.ValueAt != nil {
		return d.ValueAt(t)
	}
	return d.Value
}

// ApplyInitial seeds the current velocity on the masked axes, run once at solver start.
func (d Dirichlet) ApplyInitial(n *Node, t, dt float64) {
	v := d.velocityAt(t)
	cur := n.Current()
	for i, m := range d.Masked {
		if m {
			cur.Velocity[i] = v[i]
		}
	}
}

// ApplyConstant overwrites the predicted/corrected velocity and displacement increment on the
// masked axes, invoked after the predictor and again after the corrector (§6).
func (d Dirichlet) ApplyConstant(n *Node, t, dt float64) {
	v := d.velocityAt(t)
	f := n.New_()
	for i, m := range d.Masked {
		if m {
			f.Velocity[i] = v[i]
			f.DisplacementInc[i] = v[i] * dt
			f.Acceleration[i] = 0
		}
	}
}
