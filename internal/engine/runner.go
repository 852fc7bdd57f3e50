package engine

import (
	"log/slog"
	"time"
)

// Runner advances a simulation to completion.
type Runner struct {
	Sim      *Simulation
	Steps    int
	Interval time.Duration // 0 = run unpaced
	OnStep   func(rec *StepRecord)

	stopped bool
}

// NewRunner creates a runner for the given simulation.
func NewRunner(sim *Simulation, steps int) *Runner {
	return &Runner{Sim: sim, Steps: steps}
}

// Run executes the configured number of steps, pacing each by Interval when
// set. Returns early on Stop or a step error.
func (r *Runner) Run() error {
	slog.Info("run started", "steps", r.Steps, "seed", r.Sim.Config.Seed)

	for i := 0; i < r.Steps && !r.stopped; i++ {
		start := time.Now()

		if err := r.Sim.Step(); err != nil {
			return err
		}
		if r.OnStep != nil {
			r.OnStep(r.Sim.Collector.Latest())
		}

		if r.Interval > 0 {
			if elapsed := time.Since(start); elapsed < r.Interval {
				time.Sleep(r.Interval - elapsed)
			}
		}
	}

	slog.Info("run finished",
		"steps", r.Sim.CurrentStep(),
		"adapted", r.Sim.TotalAdapted(),
		"spending", r.Sim.Government.Spending(),
	)
	return nil
}

// Stop halts the run after the current step.
func (r *Runner) Stop() {
	r.stopped = true
}
