package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talgya/flood-adapt/internal/api"
	"github.com/talgya/flood-adapt/internal/config"
	"github.com/talgya/flood-adapt/internal/engine"
	"github.com/talgya/flood-adapt/internal/persistence"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation",
		Run:   runSimulation,
	}

	cmd.Flags().String("config", "", "Path to YAML config file")
	cmd.Flags().Int64("seed", 0, "Override the run seed")
	cmd.Flags().Int("steps", 0, "Override the number of steps")
	cmd.Flags().Int("population", 0, "Override the number of households")
	cmd.Flags().String("db", "", "SQLite results database path")
	cmd.Flags().Int("port", 0, "Serve the observation API on this port")
	cmd.Flags().Duration("interval", 0, "Pace steps by this interval (for live observation)")

	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) {
	debug, _ := cmd.Flags().GetBool("debug")
	setupLogging(debug)

	cfg, err := loadConfig(cmd)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	sim, err := engine.New(cfg)
	if err != nil {
		slog.Error("failed to assemble simulation", "error", err)
		os.Exit(1)
	}

	// Results store, keyed by a fresh run ID.
	var db *persistence.DB
	runID := uuid.New().String()
	if cfg.DatabasePath != "" {
		db, err = persistence.Open(cfg.DatabasePath)
		if err != nil {
			slog.Error("failed to open results database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.SaveRun(runID, cfg); err != nil {
			slog.Error("failed to record run", "error", err)
			os.Exit(1)
		}
		slog.Info("recording results", "path", cfg.DatabasePath, "run_id", runID)
	}

	runner := engine.NewRunner(sim, cfg.Steps)
	interval, _ := cmd.Flags().GetDuration("interval")
	runner.Interval = interval
	if db != nil {
		runner.OnStep = func(rec *engine.StepRecord) {
			if err := db.SaveStep(runID, rec); err != nil {
				slog.Error("failed to save step", "step", rec.Step, "error", err)
			}
		}
	}

	if cfg.APIPort != 0 {
		srv := &api.Server{Sim: sim, Port: cfg.APIPort}
		srv.Start()
		if runner.Interval == 0 {
			// Give observers something to watch.
			runner.Interval = 100 * time.Millisecond
		}
	}

	if err := runner.Run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	printSummary(sim)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	// Flag overrides.
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	if steps, _ := cmd.Flags().GetInt("steps"); steps != 0 {
		cfg.Steps = steps
	}
	if pop, _ := cmd.Flags().GetInt("population"); pop != 0 {
		cfg.Population = pop
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.APIPort = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printSummary(sim *engine.Simulation) {
	totalDamage := 0.0
	totalSavings := 0.0
	for _, a := range sim.Agents {
		totalDamage += a.ActualDamage
		totalSavings += a.Savings
	}

	slog.Info("final state",
		"adapted", humanize.Comma(int64(sim.TotalAdapted())),
		"of", humanize.Comma(int64(len(sim.Agents))),
		"government_spending", humanize.CommafWithDigits(sim.Government.Spending(), 0),
		"realized_damage", humanize.CommafWithDigits(totalDamage, 0),
		"household_savings", humanize.CommafWithDigits(totalSavings, 0),
	)
}
