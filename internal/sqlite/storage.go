package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teenjuna/lifo/internal"
	"github.com/teenjuna/lifo/internal/simulate"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNoResults is returned by [Storage.Save] when it's called without results.
	ErrNoResults = errors.New("run has no results")
)

// Storage is a persistent history of simulation runs backed by SQLite.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:" (in-memory database)
//   - Durable: false
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.File(memory)
	for _, cf := range configFuncs {
		if cf != nil {
			cf(cfg)
		}
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Save stores the results of a single run made at ranAt. Results keep their order.
//
// Returns a unique RunID, [ErrNoResults] if results are empty or [ErrClosed] if the storage has
// been closed.
func (s *Storage) Save(ranAt time.Time, results ...simulate.Result) (RunID, error) {
	if len(results) == 0 {
		return "", ErrNoResults
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", closed(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	id := internal.GenerateID()
	if _, err := tx.Exec(
		`
		insert into run (id, ran_at)
		values (:id, :ran_at)
		`,
		sql.Named("id", id),
		sql.Named("ran_at", toTimestamp(ranAt)),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, r := range results {
		if _, err := tx.Exec(
			`
			insert into result (
				run_id,
				position,
				policy,
				pushes,
				pops,
				size,
				capacity,
				grows,
				copied,
				duration
			) values (
				:run_id,
				:position,
				:policy,
				:pushes,
				:pops,
				:size,
				:capacity,
				:grows,
				:copied,
				:duration
			)
			`,
			sql.Named("run_id", id),
			sql.Named("position", i),
			sql.Named("policy", r.Policy),
			sql.Named("pushes", r.Pushes),
			sql.Named("pops", r.Pops),
			sql.Named("size", r.Size),
			sql.Named("capacity", r.Capacity),
			sql.Named("grows", r.Grows),
			sql.Named("copied", r.Copied),
			sql.Named("duration", int64(r.Duration)),
		); err != nil {
			return "", fmt.Errorf("insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return id, nil
}

// Runs returns up to limit runs, the newest first.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Runs(limit int) ([]Run, error) {
	if limit < 1 {
		panic("limit can't be < 1")
	}

	rows, err := s.db.Query(
		`
		select
			run.id,
			run.ran_at,
			result.policy,
			result.pushes,
			result.pops,
			result.size,
			result.capacity,
			result.grows,
			result.copied,
			result.duration
		from
			(
				select id, ran_at from run
				order by ran_at desc, id desc
				limit :limit
			) as run
			join result on result.run_id = run.id
		order by
			run.ran_at desc,
			run.id desc,
			result.position asc
		`,
		sql.Named("limit", limit),
	)
	if err != nil {
		return nil, closed(err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)

	for rows.Next() {
		var (
			id       RunID
			ranAt    int64
			duration int64
			r        simulate.Result
		)
		if err := rows.Scan(
			&id,
			&ranAt,
			&r.Policy,
			&r.Pushes,
			&r.Pops,
			&r.Size,
			&r.Capacity,
			&r.Grows,
			&r.Copied,
			&duration,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		r.Duration = time.Duration(duration)

		if len(runs) == 0 || runs[len(runs)-1].ID != id {
			runs = append(runs, Run{
				ID:    id,
				RanAt: fromTimestamp(ranAt),
			})
		}
		last := &runs[len(runs)-1]
		last.Results = append(last.Results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return runs, nil
}

// Stats returns current storage statistics.
func (s *Storage) Stats() (*Stats, error) {
	var (
		runs    int
		results int
	)
	err := s.db.QueryRow(
		`
		select
			(select count(*) from run) as runs,
			(select count(*) from result) as results
		`,
	).Scan(
		&runs,
		&results,
	)
	if err != nil {
		return nil, closed(err)
	}

	stats := Stats{
		Runs:    runs,
		Results: results,
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Run is a stored simulation run.
type Run struct {
	// ID is the unique identifier of this run.
	ID RunID
	// RanAt is the time the run was made.
	RanAt time.Time
	// Results holds a result per simulated policy.
	Results []simulate.Result
}

type RunID = string

// Stats represents statistics about the storage.
type Stats struct {
	// Runs is the total number of runs in storage.
	Runs int
	// Results is the total number of results across all runs.
	Results int
}

func open(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	// The in-memory database lives as long as its last connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

func setup(db *sql.DB) error {
	// Create table for runs.
	if _, err := db.Exec(
		`
		create table if not exists run (
			id     text primary key,
			ran_at int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	// Create table for results.
	if _, err := db.Exec(
		`
		create table if not exists result (
			run_id   text not null references run (id) on delete cascade,
			position int not null,
			policy   text not null,
			pushes   int not null,
			pops     int not null,
			size     int not null,
			capacity int not null,
			grows    int not null,
			copied   int not null,
			duration int not null,
			primary key (run_id, position)
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	// Create the index for the history logic.
	if _, err := db.Exec(
		`
		create index if not exists idx_run_ran_at
		on run (ran_at, id)
		`,
	); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	return nil
}

func closed(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	return err
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
