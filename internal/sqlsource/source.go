// Package sqlsource serves modules whose variables live in a SQLite table.
// Each distinct path in the table is one module:
//
//	CREATE TABLE module_vars (
//		path  TEXT NOT NULL,
//		name  TEXT NOT NULL,
//		kind  TEXT NOT NULL, -- int, float, bool or string
//		value TEXT NOT NULL,
//		PRIMARY KEY (path, name)
//	)
//
// The table is maintained by the host; this package only reads it.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
	"github.com/funvibe/modcore/internal/value"
)

// Schema creates the module_vars table if it is missing.
const Schema = `CREATE TABLE IF NOT EXISTS module_vars (
	path  TEXT NOT NULL,
	name  TEXT NOT NULL,
	kind  TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (path, name)
)`

// Source is a Resolver backed by the module_vars table.
type Source struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens the database at dsn and makes sure the table exists. logger
// may be nil.
func Open(ctx context.Context, dsn string, logger *log.Logger) (*Source, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return New(db, logger), nil
}

// New wraps an open database whose module_vars table already exists.
func New(db *sql.DB, logger *log.Logger) *Source {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Source{db: db, logger: logger}
}

func (s *Source) Close() error { return s.db.Close() }

// Resolve builds an indexed module from the rows stored under path.
func (s *Source) Resolve(ctx context.Context, path string) (*module.Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, kind, value FROM module_vars WHERE path = ? ORDER BY name`, path)
	if err != nil {
		return nil, &resolvers.ResolveError{Path: path, Err: err}
	}
	defer rows.Close()

	m := module.New().SetID(path)
	for rows.Next() {
		var name, kind, text string
		if err := rows.Scan(&name, &kind, &text); err != nil {
			return nil, &resolvers.ResolveError{Path: path, Err: err}
		}
		v, err := decode(kind, text)
		if err != nil {
			return nil, &resolvers.ResolveError{Path: path, Err: fmt.Errorf("%s: %w", name, err)}
		}
		m.SetVar(name, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &resolvers.ResolveError{Path: path, Err: err}
	}
	if m.IsEmpty() {
		return nil, &resolvers.ResolveError{Path: path, Err: resolvers.ErrModuleNotFound}
	}
	m.BuildIndex()
	s.logger.Debug("module read", "path", path)
	return m, nil
}

// Paths lists the module paths present in the table, sorted.
func (s *Source) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT path FROM module_vars ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func decode(kind, text string) (any, error) {
	switch kind {
	case "int":
		return strconv.ParseInt(text, 10, 64)
	case "float":
		return strconv.ParseFloat(text, 64)
	case "bool":
		return strconv.ParseBool(text)
	case "string":
		return value.ImmutableString(text), nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}
