// Package record persists per-tick population statistics for offline
// analysis. It stores aggregate counters only and cannot reconstruct a grid.
package record

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"pixelciv/internal/sims/pixelciv"
)

// StatsDB wraps a SQLite connection holding the tick-statistics history.
type StatsDB struct {
	conn *sqlx.DB
}

// OpenStatsDB opens or creates a SQLite database at the given path.
func OpenStatsDB(path string) (*StatsDB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	db := &StatsDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate stats db: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *StatsDB) Close() error {
	return db.conn.Close()
}

func (db *StatsDB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tick_stats (
		tick INTEGER NOT NULL,
		grp TEXT NOT NULL,
		total INTEGER NOT NULL,
		diseased INTEGER NOT NULL,
		sum_strength INTEGER NOT NULL,
		sum_age INTEGER NOT NULL,
		PRIMARY KEY (tick, grp)
	);`
	_, err := db.conn.Exec(schema)
	return err
}

// WriteSnapshot records one tick's per-faction counters.
func (db *StatsDB) WriteSnapshot(tick uint64, stats pixelciv.Stats) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	for g := pixelciv.GroupRed; g <= pixelciv.GroupBlue; g++ {
		s := stats[g]
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO tick_stats (tick, grp, total, diseased, sum_strength, sum_age)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			tick, g.String(), s.Total, s.Diseased, s.SumStrength, s.SumAge,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}
	return tx.Commit()
}

// SnapshotCount reports the number of recorded (tick, group) rows.
func (db *StatsDB) SnapshotCount() (int, error) {
	var n int
	if err := db.conn.Get(&n, `SELECT COUNT(*) FROM tick_stats`); err != nil {
		return 0, err
	}
	return n, nil
}

// TotalAt returns the recorded population of one faction at a tick.
func (db *StatsDB) TotalAt(tick uint64, group pixelciv.Group) (int, error) {
	var n int
	err := db.conn.Get(&n,
		`SELECT total FROM tick_stats WHERE tick = ? AND grp = ?`, tick, group.String())
	if err != nil {
		return 0, err
	}
	return n, nil
}
