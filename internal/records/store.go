package records

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrIncompatibleHeader indicates the scanner header has fewer columns than
// the identification record requires.
var ErrIncompatibleHeader = errors.New("incompatible scan header")

// Store manages the per-run characterization table backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// LoadResult reports how many scanner rows were stored and skipped.
type LoadResult struct {
	Inserted int
	Skipped  int
	Columns  []string
}

// Open creates or connects to the database file at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return newStore(db, path)
}

// OpenMemory returns a store backed by a private in-memory database.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Each pooled connection would otherwise see its own empty database.
	db.SetMaxOpenConns(1)
	return newStore(db, ":memory:")
}

func newStore(db *sql.DB, path string) (*Store, error) {
	pragmas := []string{
		"PRAGMA journal_mode=DELETE",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the connection for read-only aggregate queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// LoadFile loads the scanner CSV at path.
func (s *Store) LoadFile(ctx context.Context, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open scan output: %w", err)
	}
	defer f.Close()
	return s.Load(ctx, f)
}

// Load replaces the siegfried table with the rows read from r. The first CSV
// row is the header; every later row whose field count matches the header is
// inserted and the rest are counted as skipped.
func (s *Store) Load(ctx context.Context, r io.Reader) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var result LoadResult
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		if err := s.recreate(ctx, Columns); err != nil {
			return result, err
		}
		result.Columns = append([]string(nil), Columns...)
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("read scan header: %w", err)
	}

	columns, err := columnsForHeader(header)
	if err != nil {
		return result, err
	}
	result.Columns = columns
	width := len(header)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin load tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+TableName); err != nil {
		return result, fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createTableFor(columns)); err != nil {
		return result, fmt.Errorf("create table: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertFor(columns))
	if err != nil {
		return result, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, width)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("read scan row: %w", err)
		}
		if len(row) != width {
			result.Skipped++
			continue
		}
		for i, value := range row {
			args[i] = value
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return result, fmt.Errorf("insert row: %w", err)
		}
		result.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit load: %w", err)
	}
	return result, nil
}

func (s *Store) recreate(ctx context.Context, columns []string) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+TableName); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, createTableFor(columns)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+TableName).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Records returns every stored record in insertion order.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	return Query(ctx, s.db, "SELECT "+SelectColumns+" FROM "+TableName+" ORDER BY rowid")
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Query runs a statement that projects SelectColumns and scans the records.
func Query(ctx context.Context, q Querier, query string, args ...any) ([]Record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec  Record
			vals [12]sql.NullString
		)
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Filename = vals[0].String
		rec.Filesize = vals[1].String
		rec.Modified = vals[2].String
		rec.Errors = vals[3].String
		rec.Hash = vals[4].String
		rec.Namespace = vals[5].String
		rec.ID = vals[6].String
		rec.Format = vals[7].String
		rec.Version = vals[8].String
		rec.MIME = vals[9].String
		rec.Basis = vals[10].String
		rec.Warning = vals[11].String
		out = append(out, rec)
	}
	return out, rows.Err()
}
