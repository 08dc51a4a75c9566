package engine

import (
	"database/sql"
	"fmt"
	"io"
)

// Result is an ordered sequence of rows, each row a slice of text cells.
// Administrative commands and engine queries both produce Results; the
// caller owns the Result and must Close it when done iterating, on every
// exit path.
type Result interface {
	// Next returns the next row, or io.EOF when the sequence is exhausted.
	Next() ([]string, error)
	Close() error
}

// Rows is the in-memory Result variant. It holds no external resource;
// Close is a no-op.
type Rows struct {
	data [][]string
	pos  int
}

func NewRows(data [][]string) *Rows {
	return &Rows{data: data}
}

func (rows *Rows) Next() ([]string, error) {
	if rows.pos >= len(rows.data) {
		return nil, io.EOF
	}
	row := rows.data[rows.pos]
	rows.pos++
	return row, nil
}

func (rows *Rows) Close() error {
	return nil
}

// cursorRows is the engine-owned Result variant, wrapping a live *sql.Rows
// handle. Close releases the handle at most once.
type cursorRows struct {
	rows   *sql.Rows
	cols   int
	closed bool
}

func newCursorRows(rows *sql.Rows) (*cursorRows, error) {
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &cursorRows{rows: rows, cols: len(columns)}, nil
}

func (cursor *cursorRows) Next() ([]string, error) {
	if !cursor.rows.Next() {
		if err := cursor.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	values := make([]any, cursor.cols)
	for i := range values {
		values[i] = new(any)
	}
	if err := cursor.rows.Scan(values...); err != nil {
		return nil, err
	}

	row := make([]string, cursor.cols)
	for i, value := range values {
		row[i] = formatValue(*(value.(*any)))
	}
	return row, nil
}

func (cursor *cursorRows) Close() error {
	if cursor.closed {
		return nil
	}
	cursor.closed = true
	return cursor.rows.Close()
}

func formatValue(value any) string {
	switch value := value.(type) {
	case nil:
		return "NULL"
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return fmt.Sprint(value)
	}
}
