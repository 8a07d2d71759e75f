package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/dynela/dynerr"
	"github.com/cpmech/dynela/mesh"
	"github.com/cpmech/dynela/result"
	"github.com/cpmech/dynela/solver"
)

func main() {
	exitCode := 0

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
		os.Exit(exitCode)
	}()

	deckPath := flag.String("deck", "", "path to a JSON simulation deck")
	outBase := flag.String("out", "dynela_result", "base path for result/snapshot files")
	flag.Parse()

	if *deckPath == "" {
		chk.Panic("please provide a simulation deck: -deck path/to/model.json")
	}

	io.PfWhite("\ndynela -- explicit dynamic finite-element solver\n\n")

	deck, err := mesh.Load(*deckPath)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		exitCode = 1
		return
	}

	m, err := deck.Build()
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		exitCode = 1
		return
	}

	s, err := solver.New(deck.Solver)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		exitCode = 1
		return
	}
	s.Print()

	var sinks []result.Sink
	if deck.Solver.SnapDt > 0 {
		sinks = append(sinks, &result.PeriodicVTKSnapshot{
			Base:      *outBase,
			Start:     deck.Solver.SnapStart,
			End:       deck.Solver.SnapEnd,
			Increment: deck.Solver.SnapDt,
		})
	}

	report, err := s.Solve(m, deck.Solver.TEnd, sinks, *outBase)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		if de, ok := err.(*dynerr.Error); ok {
			io.Pfyel("failure kind: %v\n", de.Kind)
		}
		exitCode = 1
		return
	}

	io.PfGreen("\n> done: %d steps, final t=%g, last dt=%g\n", report.Steps, report.FinalTime, report.LastDt)
}
