package engine

import (
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Column describes one column of a table definition.
type Column struct {
	Name string
	Type string
}

// Engine wraps a live DuckDB connection. An empty path opens an in-memory
// database.
type Engine struct {
	db *sql.DB
}

func Open(path string) (*Engine, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database %s: %w", path, err)
	}
	return &Engine{db: db}, nil
}

func (engine *Engine) Close() error {
	return engine.db.Close()
}

// Query forwards text verbatim to DuckDB. The returned Result owns the
// underlying cursor and must be closed by the caller.
func (engine *Engine) Query(text string) (Result, error) {
	rows, err := engine.db.Query(text)
	if err != nil {
		return nil, err
	}
	return newCursorRows(rows)
}

// SchemaNames lists the schemas of the connected database in lexical order.
func (engine *Engine) SchemaNames() ([]string, error) {
	return engine.stringColumn(
		"SELECT schema_name FROM information_schema.schemata ORDER BY schema_name")
}

// TableNames lists the tables of a schema in lexical order.
func (engine *Engine) TableNames(schema string) ([]string, error) {
	return engine.stringColumn(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name",
		schema)
}

// TableColumns returns the (name, type) definition of a table in ordinal
// order, searching all schemas.
func (engine *Engine) TableColumns(table string) ([]Column, error) {
	rows, err := engine.db.Query(
		"SELECT column_name, data_type FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var column Column
		if err := rows.Scan(&column.Name, &column.Type); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	return columns, nil
}

// Version reports the DuckDB library version for the startup banner.
func (engine *Engine) Version() string {
	var version string
	if err := engine.db.QueryRow("SELECT version()").Scan(&version); err != nil {
		return "unknown"
	}
	return version
}

func (engine *Engine) stringColumn(query string, args ...any) ([]string, error) {
	rows, err := engine.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
