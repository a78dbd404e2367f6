// Package duckdb persists breakpoint support counts to a DuckDB database so
// results stay queryable across pipeline runs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/fusionspan/fusionspan/internal/support"
)

// Store manages a DuckDB connection for storing support results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path. Use an empty
// string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		run_id VARCHAR PRIMARY KEY,
		started_at TIMESTAMP,
		breakpoints_file VARCHAR,
		alignments_file VARCHAR,
		splice_bias INTEGER,
		max_fragment_length INTEGER
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS support_counts (
		run_id VARCHAR,
		cluster_id VARCHAR,
		gene_id VARCHAR,
		support INTEGER,
		PRIMARY KEY (run_id, cluster_id, gene_id)
	)`)
	return err
}

// RunMeta describes one counting run.
type RunMeta struct {
	RunID             string
	StartedAt         time.Time
	BreakpointsFile   string
	AlignmentsFile    string
	SpliceBias        int
	MaxFragmentLength int
}

// NewRunID returns a timestamp-based run identifier.
func NewRunID(t time.Time) string {
	return "run-" + t.UTC().Format("20060102-150405.000000000")
}

// RecordRun stores the parameters of a counting run.
func (s *Store) RecordRun(meta RunMeta) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, started_at, breakpoints_file, alignments_file, splice_bias, max_fragment_length)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.StartedAt, meta.BreakpointsFile, meta.AlignmentsFile,
		meta.SpliceBias, meta.MaxFragmentLength,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// WriteSupport stores all rows of a support table under the given run ID.
func (s *Store) WriteSupport(runID string, t *support.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO support_counts (run_id, cluster_id, gene_id, support) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, cluster := range t.Clusters() {
		for _, gene := range t.Genes(cluster) {
			count, _ := t.Get(cluster, gene)
			if _, err := stmt.Exec(runID, cluster, gene, count); err != nil {
				return fmt.Errorf("insert support row: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit support rows: %w", err)
	}
	return nil
}

// Support reads the support counts stored for a run, keyed by cluster then gene.
func (s *Store) Support(runID string) (map[string]map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT cluster_id, gene_id, support FROM support_counts WHERE run_id = ? ORDER BY cluster_id, gene_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query support counts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]map[string]int)
	for rows.Next() {
		var cluster, gene string
		var count int
		if err := rows.Scan(&cluster, &gene, &count); err != nil {
			return nil, fmt.Errorf("scan support row: %w", err)
		}
		if result[cluster] == nil {
			result[cluster] = make(map[string]int)
		}
		result[cluster][gene] = count
	}
	return result, rows.Err()
}
