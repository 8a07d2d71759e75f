// Package result implements the observable result/history stream of §4.8: periodic VTK
// snapshots indexed by a monotonic counter, a generic history subscriber, and the emergency
// finalizer a fatal step triggers before the run aborts. Neither sink sits on the critical
// arithmetic path; both are free to allocate and format.
package result

import (
	"fmt"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/dynela/model"
)

// Sink observes the model's state at a simulation time, once per accepted step.
type Sink interface {
	Observe(t float64, m *model.Model) error
}

// PeriodicVTKSnapshot writes a VTK-format state dump whenever t crosses into [Start, End] at
// Increment-spaced simulation times, file name `<Base><index:3>.vtk`, index from 0 (§4.8, §6).
type PeriodicVTKSnapshot struct {
	Base      string
	Start     float64
	End       float64
	Increment float64

	next  float64
	index int
	armed bool
}

func (s *PeriodicVTKSnapshot) Observe(t float64, m *model.Model) error {
	if s.Increment <= 0 {
		return nil
	}
	if !s.armed {
		s.next = s.Start
		s.armed = true
	}
	if t < s.next || t > s.End {
		return nil
	}
	path := fmt.Sprintf("%s%03d.vtk", s.Base, s.index)
	if err := writeVTK(path, m); err != nil {
		return err
	}
	io.Pf("snapshot %s written at t=%v\n", path, t)
	s.index++
	s.next += s.Increment
	return nil
}

// HistorySink wraps a plain subscriber function, invoked once per step with (t, model) and free
// to extract scalar/vector/tensor quantities at named nodes or integration points (§4.8).
type HistorySink struct {
	Fn func(t float64, m *model.Model)
}

func (h HistorySink) Observe(t float64, m *model.Model) error {
	if h.Fn != nil {
		h.Fn(t, m)
	}
	return nil
}

// EmergencySnapshot writes one terminal VTK dump when a step fails fatally (§4.8, §5
// cancellation: "flushes an emergency result file, and terminates the run").
func EmergencySnapshot(base string, m *model.Model) error {
	path := base + "_emergency.vtk"
	if err := writeVTK(path, m); err != nil {
		return err
	}
	io.PfRed("emergency snapshot written to %s\n", path)
	return nil
}

// writeVTK writes a legacy ASCII VTK UNSTRUCTURED_GRID file: node coordinates as POINTS, element
// connectivity as CELLS/CELL_TYPES, and per-node displacement/velocity as POINT_DATA vectors.
func writeVTK(path string, m *model.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(f, "dynela result\n")
	fmt.Fprintf(f, "ASCII\n")
	fmt.Fprintf(f, "DATASET UNSTRUCTURED_GRID\n")

	fmt.Fprintf(f, "POINTS %d double\n", len(m.Nodes))
	for _, n := range m.Nodes {
		fmt.Fprintf(f, "%g %g %g\n", n.X[0], n.X[1], n.X[2])
	}

	total := 0
	for _, e := range m.Elements {
		total += len(e.Nodes) + 1
	}
	fmt.Fprintf(f, "CELLS %d %d\n", len(m.Elements), total)
	posOf := make(map[int]int, len(m.Nodes))
	for i, n := range m.Nodes {
		posOf[n.Number] = i
	}
	for _, e := range m.Elements {
		fmt.Fprintf(f, "%d", len(e.Nodes))
		for _, n := range e.Nodes {
			fmt.Fprintf(f, " %d", posOf[n.Number])
		}
		fmt.Fprintf(f, "\n")
	}

	fmt.Fprintf(f, "CELL_TYPES %d\n", len(m.Elements))
	for _, e := range m.Elements {
		fmt.Fprintf(f, "%d\n", e.Table.VTKCode)
	}

	fmt.Fprintf(f, "POINT_DATA %d\n", len(m.Nodes))
	fmt.Fprintf(f, "VECTORS displacement double\n")
	for _, n := range m.Nodes {
		d := n.Current().Displacement
		fmt.Fprintf(f, "%g %g %g\n", d[0], d[1], d[2])
	}
	fmt.Fprintf(f, "VECTORS velocity double\n")
	for _, n := range m.Nodes {
		v := n.Current().Velocity
		fmt.Fprintf(f, "%g %g %g\n", v[0], v[1], v[2])
	}
	return nil
}
