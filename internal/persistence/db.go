// Package persistence provides SQLite-based storage of run results: the
// run configuration plus the per-step model metrics and household
// snapshots the collector produces.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/flood-adapt/internal/config"
	"github.com/talgya/flood-adapt/internal/engine"
)

// DB wraps a SQLite connection for results storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS model_steps (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		total_adapted INTEGER NOT NULL,
		government_spending REAL NOT NULL,
		PRIMARY KEY (run_id, step)
	);

	CREATE TABLE IF NOT EXISTS agent_steps (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		agent_id INTEGER NOT NULL,
		loc_x REAL NOT NULL,
		loc_y REAL NOT NULL,
		income_category TEXT NOT NULL,
		savings REAL NOT NULL,
		estimated_depths_json TEXT NOT NULL,
		estimated_damages_json TEXT NOT NULL,
		utility_adapt REAL NOT NULL,
		utility_no_adapt REAL NOT NULL,
		risk_perception REAL NOT NULL,
		prior_risk_perception REAL NOT NULL,
		actual_depth REAL NOT NULL,
		actual_damage REAL NOT NULL,
		is_adapted INTEGER NOT NULL,
		adapted_at_step INTEGER NOT NULL,
		friend_count INTEGER NOT NULL,
		PRIMARY KEY (run_id, step, agent_id)
	);

	CREATE INDEX IF NOT EXISTS idx_agent_steps_agent ON agent_steps(run_id, agent_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun records a run's identity, seed, and full configuration.
func (db *DB) SaveRun(runID string, cfg *config.Config) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO runs (id, seed, config_json) VALUES (?, ?, ?)`,
		runID, cfg.Seed, string(cfgJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}
	return nil
}

// SaveStep writes one step record: the model metrics row and a row per
// household snapshot, in a single transaction.
func (db *DB) SaveStep(runID string, rec *engine.StepRecord) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO model_steps (run_id, step, total_adapted, government_spending)
		 VALUES (?, ?, ?, ?)`,
		runID, rec.Step, rec.TotalAdapted, rec.GovernmentSpending,
	); err != nil {
		return fmt.Errorf("insert model step %d: %w", rec.Step, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO agent_steps
		(run_id, step, agent_id, loc_x, loc_y, income_category, savings,
		 estimated_depths_json, estimated_damages_json,
		 utility_adapt, utility_no_adapt, risk_perception, prior_risk_perception,
		 actual_depth, actual_damage, is_adapted, adapted_at_step, friend_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range rec.Agents {
		depthsJSON, _ := json.Marshal(a.EstimatedDepths)
		damagesJSON, _ := json.Marshal(a.EstimatedDamages)

		adapted := 0
		if a.IsAdapted {
			adapted = 1
		}

		_, err := stmt.Exec(
			runID, rec.Step, a.ID, a.Location.X, a.Location.Y,
			a.IncomeCategory, a.Savings,
			string(depthsJSON), string(damagesJSON),
			a.UtilityAdapt, a.UtilityNoAdapt,
			a.RiskPerception, a.PriorRiskPerception,
			a.ActualDepth, a.ActualDamage,
			adapted, a.AdaptedAtStep, a.FriendCount,
		)
		if err != nil {
			return fmt.Errorf("insert agent %d step %d: %w", a.ID, rec.Step, err)
		}
	}

	return tx.Commit()
}

// AdoptionCurve returns the total adapted household count per step for a run.
func (db *DB) AdoptionCurve(runID string) ([]int, error) {
	var counts []int
	err := db.conn.Select(&counts,
		`SELECT total_adapted FROM model_steps WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("query adoption curve: %w", err)
	}
	return counts, nil
}
