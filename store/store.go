// Package store binds record contracts to a SQL database. Tables are
// created from the reflected DDL, rows are written from projected
// expressions and read back through extraction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"rowcodec/expr"
	"rowcodec/record"
	"rowcodec/value"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DB wraps a *sql.DB with statement logging.
type DB struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens an embedded SQLite database at dsn. Use ":memory:" for a
// private in-memory database.
func Open(dsn string, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	// an in-memory database lives on a single connection
	db.SetMaxOpenConns(1)

	return New(db, log), nil
}

// New wraps an already opened database.
func New(db *sql.DB, log zerolog.Logger) *DB {
	return &DB{db: db, log: log}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) exec(ctx context.Context, query string, args ...any) error {
	d.log.Debug().Str("query", query).Int("args", len(args)).Msg("exec")

	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec %q: %w", query, err)
	}

	return nil
}

// Table stores T values in one table.
type Table[T any] struct {
	db     *DB
	name   string
	rec    *record.Record[T]
	schema []record.Column
}

// Bind returns the table called name holding records described by rec.
func Bind[T any](db *DB, name string, rec *record.Record[T]) *Table[T] {
	return &Table[T]{db: db, name: name, rec: rec, schema: rec.Schema()}
}

func (t *Table[T]) Name() string { return t.name }

// Create runs the table DDL.
func (t *Table[T]) Create(ctx context.Context) error {
	return t.db.exec(ctx, t.rec.DDL(t.name))
}

// Insert writes every row with one INSERT statement each, inside a single
// transaction.
func (t *Table[T]) Insert(ctx context.Context, rows ...*T) (err error) {
	if len(rows) == 0 {
		return nil
	}

	query := t.insertQuery()

	tx, err := t.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert into %s: %w", t.name, err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, r := range rows {
		if r == nil {
			return fmt.Errorf("insert into %s: row %d is nil", t.name, i)
		}

		args, err := expr.Args(t.rec.ProjectRow(r))
		if err != nil {
			return fmt.Errorf("insert into %s: row %d: %w", t.name, i, err)
		}

		t.db.log.Debug().Str("query", query).Int("row", i).Msg("exec")

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: row %d: %w", t.name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert into %s: %w", t.name, err)
	}

	return nil
}

// All reads every row of the table in storage order.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	return t.Where(ctx, "")
}

// Where reads the rows matching cond, a raw SQL boolean expression with
// ? placeholders bound to args. An empty cond selects every row.
func (t *Table[T]) Where(ctx context.Context, cond string, args ...any) ([]T, error) {
	query := t.selectQuery(cond)
	t.db.log.Debug().Str("query", query).Int("args", len(args)).Msg("query")

	rows, err := t.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	var out [][]value.Value

	cells := make([]any, len(t.schema))
	ptrs := make([]any, len(cells))
	for i := range cells {
		ptrs[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}

		row := make([]value.Value, len(cells))
		for i, cell := range cells {
			if row[i], err = Cell(t.schema[i], cell); err != nil {
				return nil, fmt.Errorf("scan %s: row %d: %w", t.name, len(out), err)
			}
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", t.name, err)
	}

	return t.rec.ExtractRows(t.rec.Columns(), out)
}

func (t *Table[T]) insertQuery() string {
	columns := t.rec.Columns()

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)
}

func (t *Table[T]) selectQuery(cond string) string {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.rec.Columns(), ", "), t.name)
	if cond != "" {
		query += " WHERE " + cond
	}

	return query
}
