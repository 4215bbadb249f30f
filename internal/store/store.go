// Package store persists conversion results in DuckDB so repeated batch
// runs skip the network round-trips for variants already converted. Failures
// are never written; a variant that failed once is retried on the next run.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/varlift/varlift/internal/convert"
)

// Store manages a DuckDB connection caching notation -> VCF conversions.
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
			return nil, fmt.Errorf("create cache directory: %w", err)
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

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		notation VARCHAR PRIMARY KEY,
		chrom INTEGER,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR
	)`)
	return err
}

// Get returns the cached conversion for a notation string, or found=false.
func (s *Store) Get(notation string) (*convert.VCFRecord, bool, error) {
	row := s.db.QueryRow(
		`SELECT chrom, pos, ref, alt FROM conversions WHERE notation = ?`, notation)

	var rec convert.VCFRecord
	switch err := row.Scan(&rec.Chrom, &rec.Pos, &rec.Ref, &rec.Alt); err {
	case nil:
		return &rec, true, nil
	case sql.ErrNoRows:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("lookup conversion: %w", err)
	}
}

// Put stores a successful conversion. Re-inserting the same notation is a
// no-op rather than an error, so concurrent runs over overlapping inputs
// don't trip over each other.
func (s *Store) Put(notation string, rec *convert.VCFRecord) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO conversions (notation, chrom, pos, ref, alt) VALUES (?, ?, ?, ?, ?)`,
		notation, rec.Chrom, rec.Pos, rec.Ref, rec.Alt)
	if err != nil {
		return fmt.Errorf("store conversion: %w", err)
	}
	return nil
}

// Count returns the number of cached conversions.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count conversions: %w", err)
	}
	return n, nil
}

// Clear removes all cached conversions.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM conversions`)
	return err
}
