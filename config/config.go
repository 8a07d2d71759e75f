// Package config holds the solver's run-time configuration (§6), validated the way
// fem.DynCoefs.Init validates its θ/Newmark parameters, but returning a dynerr rather than
// panicking: a bad config is an init-time condition the caller should be able to recover from.
package config

import "github.com/cpmech/dynela/dynerr"

// SolverConfig is the set of knobs the explicit solver and its reporting need.
type SolverConfig struct {
	RhoB float64 // Chung-Hulbert spectral radius, 0 <= RhoB <= 1

	TStart float64
	TEnd   float64

	SnapStart float64
	SnapEnd   float64
	SnapDt    float64 // snapshot increment; <=0 disables periodic snapshots

	ReportFreq int  // print a progress line every ReportFreq steps; 0 disables
	CPUReport  bool // print the timing.Frame breakdown at the end of the run

	SafetyFactor float64 // multiplies the Courant bound, 0 < SafetyFactor <= 1
}

// Default returns a conservative configuration: rho_b=1 (no high-frequency numerical dissipation),
// safety factor 0.8, reporting every 100 steps.
func Default() SolverConfig {
	return SolverConfig{
		RhoB:         1.0,
		SafetyFactor: 0.8,
		ReportFreq:   100,
	}
}

// Validate checks the ranges spec §6/§9 require.
func (c SolverConfig) Validate() error {
	if c.RhoB < 0 || c.RhoB > 1 {
		return dynerr.New(dynerr.ConfigOutOfRange, "rho_b must be in [0,1], got %v", c.RhoB)
	}
	if c.TEnd <= c.TStart {
		return dynerr.New(dynerr.ConfigOutOfRange, "t_end (%v) must be greater than t_start (%v)", c.TEnd, c.TStart)
	}
	if c.SnapDt > 0 && c.SnapEnd < c.SnapStart {
		return dynerr.New(dynerr.ConfigOutOfRange, "snapshot window is inverted: start=%v end=%v", c.SnapStart, c.SnapEnd)
	}
	if c.SafetyFactor <= 0 || c.SafetyFactor > 1 {
		return dynerr.New(dynerr.ConfigOutOfRange, "safety factor must be in (0,1], got %v", c.SafetyFactor)
	}
	if c.ReportFreq < 0 {
		return dynerr.New(dynerr.ConfigOutOfRange, "report frequency cannot be negative, got %d", c.ReportFreq)
	}
	return nil
}
