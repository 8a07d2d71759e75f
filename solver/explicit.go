// Package solver implements the §4.7 Chung-Hulbert explicit predictor/corrector time
// integrator that drives a model.Model through its step loop, instrumented with the §6 timing
// frame and result sinks. The derived-coefficient struct mirrors fem.DynCoefs's style: input
// parameter plus Greek-letter derived fields, computed once by Init with chk.Panic-style range
// validation, printable via io.Pfgrey.
package solver

import (
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/dynela/config"
	"github.com/cpmech/dynela/dynerr"
	"github.com/cpmech/dynela/model"
	"github.com/cpmech/dynela/result"
	"github.com/cpmech/dynela/timing"
)

// Explicit is the Chung-Hulbert scheme parameterized by the spectral radius at the bifurcation
// frequency. omegaS is the stable-frequency multiplier of §4.7; it is carried for reporting but
// does not gate the Courant-based Δt the scheme actually steps with.
type Explicit struct {
	RhoB float64

	alphaM float64
	beta   float64
	gamma  float64
	omegaS float64

	Config config.SolverConfig
	Frame  *timing.Frame
}

// New derives the Chung-Hulbert coefficients from cfg.RhoB (fem.DynCoefs.Init idiom).
func New(cfg config.SolverConfig) (*Explicit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Explicit{RhoB: cfg.RhoB, Config: cfg, Frame: timing.NewFrame()}
	e.init()
	return e, nil
}

func (e *Explicit) init() {
	rb := e.RhoB
	if rb < 0.0 || rb > 1.0 {
		chk.Panic("rho_b must be in [0,1] (rho_b = %v is incorrect)", rb)
	}
	e.alphaM = (2.0*rb - 1.0) / (1.0 + rb)
	e.beta = (5.0 - 3.0*rb) / ((1.0 + rb) * (1.0 + rb) * (2.0 - rb))
	e.gamma = 1.5 - e.alphaM
	num := 12.0 * (1.0 + rb) * (1.0 + rb) * (1.0 + rb) * (2.0 - rb)
	den := 10.0 + 15.0*rb - rb*rb + rb*rb*rb - rb*rb*rb*rb
	e.omegaS = math.Sqrt(num / den)
}

// Print prints the derived coefficients (fem.DynCoefs.Print idiom).
func (e *Explicit) Print() {
	io.Pfgrey("rho_b    = %v\n", e.RhoB)
	io.Pfgrey("alpha_M  = %v\n", e.alphaM)
	io.Pfgrey("beta     = %v\n", e.beta)
	io.Pfgrey("gamma    = %v\n", e.gamma)
	io.Pfgrey("omega_s  = %v\n", e.omegaS)
}

// StepReport summarizes one call to Solve.
type StepReport struct {
	Steps    int
	FinalTime float64
	LastDt    float64
}

// Solve runs the §4.7 step loop until m's time reaches upTo (clamped to Config.TEnd), invoking
// every sink once per accepted step and writing an emergency snapshot before returning any fatal
// *dynerr.Error.
func (e *Explicit) Solve(m *model.Model, upTo float64, sinks []result.Sink, emergencyBase string) (StepReport, error) {
	e.Frame.Start(timing.Solver)
	defer e.Frame.Stop(timing.Solver)

	end := upTo
	if e.Config.TEnd < end {
		end = e.Config.TEnd
	}

	m.AssembleMass(false)

	for _, n := range m.Nodes {
		if n.Binding != nil {
			n.Binding.ApplyInitial(n, m.CurrentTime, 0)
		}
	}

	report := StepReport{FinalTime: m.CurrentTime}

	// the Courant scan reads each element's current Jacobians, so compute them first
	if err := m.ComputeJacobians(); err != nil {
		return e.fail(m, emergencyBase, report, err)
	}
	dt := m.CourantTimestep() * e.Config.SafetyFactor
	step := 0
	for m.CurrentTime < end {
		e.Frame.Start(timing.TimeStep)

		if dt <= 0 {
			e.Frame.Stop(timing.TimeStep)
			return report, dynerr.New(dynerr.ConfigOutOfRange, "non-positive timestep %v at t=%v", dt, m.CurrentTime)
		}
		if m.CurrentTime+dt > end {
			dt = end - m.CurrentTime
		}
		tNew := m.CurrentTime + dt

		if err := e.predictor(m, dt); err != nil {
			e.Frame.Stop(timing.TimeStep)
			return e.fail(m, emergencyBase, report, err)
		}

		e.Frame.Start(timing.Jacobian)
		err := m.ComputeJacobians()
		e.Frame.Stop(timing.Jacobian)
		if err != nil {
			e.Frame.Stop(timing.TimeStep)
			return e.fail(m, emergencyBase, report, err)
		}

		e.Frame.Start(timing.Strains)
		err = m.ComputeStrains()
		e.Frame.Stop(timing.Strains)
		if err != nil {
			e.Frame.Stop(timing.TimeStep)
			return e.fail(m, emergencyBase, report, err)
		}

		e.Frame.Start(timing.Stress)
		err = m.UpdatePressureAndStress(dt)
		e.Frame.Stop(timing.Stress)
		if err != nil {
			e.Frame.Stop(timing.TimeStep)
			return e.fail(m, emergencyBase, report, err)
		}

		e.Frame.Start(timing.FinalRotation)
		m.ApplyObjectivityRotation()
		e.Frame.Stop(timing.FinalRotation)

		e.Frame.Start(timing.InternalForces)
		m.AssembleInternalForces()
		e.Frame.Stop(timing.InternalForces)

		e.Frame.Start(timing.ExplicitSolve)
		e.corrector(m, dt, tNew)
		e.Frame.Stop(timing.ExplicitSolve)

		e.Frame.Start(timing.Density)
		m.UpdateDensities()
		e.Frame.Stop(timing.Density)

		m.CurrentTime = tNew
		step++
		report.Steps = step
		report.FinalTime = tNew
		report.LastDt = dt

		for _, s := range sinks {
			if err := s.Observe(tNew, m); err != nil {
				e.Frame.Stop(timing.TimeStep)
				return e.fail(m, emergencyBase, report, err)
			}
		}

		if e.Config.ReportFreq > 0 && step%e.Config.ReportFreq == 0 {
			io.Pfcyan("step %d  t=%g  dt=%g\n", step, tNew, dt)
		}

		for _, n := range m.Nodes {
			n.Swap()
		}

		dt = m.CourantTimestep() * e.Config.SafetyFactor

		e.Frame.Stop(timing.TimeStep)
	}

	if e.Config.CPUReport {
		e.Frame.Report(os.Stdout)
	}

	return report, nil
}

// predictor computes Δu_pred, v_pred, a_pred=0 per node (§4.7 step 2) and applies Dirichlet BCs
// at the step's start time to the predicted fields.
func (e *Explicit) predictor(m *model.Model, dt float64) error {
	e.Frame.Start(timing.Predictor)
	defer e.Frame.Stop(timing.Predictor)

	for _, el := range m.Elements {
		el.BeginStep()
	}
	for _, n := range m.Nodes {
		n.Clone()
		cur := n.Current()
		next := n.New_()
		for d := 0; d < 3; d++ {
			next.DisplacementInc[d] = dt*cur.Velocity[d] + (0.5-e.beta)*dt*dt*cur.Acceleration[d]
			next.Velocity[d] = cur.Velocity[d] + (1.0-e.gamma)*dt*cur.Acceleration[d]
			next.Acceleration[d] = 0
		}
		if n.Binding != nil {
			n.Binding.ApplyConstant(n, m.CurrentTime, dt)
		}
	}
	return nil
}

// corrector applies the Chung-Hulbert correction per node (§4.7 step 9), re-applies Dirichlet
// BCs at the new time, advances displacement and current coordinates.
func (e *Explicit) corrector(m *model.Model, dt, tNew float64) {
	for i, n := range m.Nodes {
		cur := n.Current()
		next := n.New_()
		fInt := m.FInt[i]
		for d := 0; d < 3; d++ {
			aTmp := 0.0
			if n.Mass > 0 {
				aTmp = fInt[d] / n.Mass
			}
			aNew := (aTmp - e.alphaM*cur.Acceleration[d]) / (1.0 - e.alphaM)
			next.Acceleration[d] = aNew
			next.Velocity[d] = next.Velocity[d] + e.gamma*dt*aNew
			next.DisplacementInc[d] = next.DisplacementInc[d] + e.beta*dt*dt*aNew
		}
		if n.Binding != nil {
			n.Binding.ApplyConstant(n, tNew, dt)
		}
		for d := 0; d < 3; d++ {
			next.Displacement[d] = cur.Displacement[d] + next.DisplacementInc[d]
			n.X[d] += next.DisplacementInc[d]
		}
	}
}

// fail writes the emergency snapshot and returns the triggering error unchanged (§4.8, §5).
func (e *Explicit) fail(m *model.Model, base string, report StepReport, err error) (StepReport, error) {
	if snapErr := result.EmergencySnapshot(base, m); snapErr != nil {
		io.Pfred("emergency snapshot failed: %v\n", snapErr)
	}
	return report, err
}
