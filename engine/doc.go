// Package engine wraps the embedded DuckDB database behind the small
// surface the shell needs: verbatim query execution, catalog inspection,
// and version metadata.
//
// # Usage
//
//	eng, err := engine.Open("analytics.duckdb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	result, err := eng.Query("SELECT * FROM orders")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer result.Close()
//
// # Result Variants
//
// There are two Result implementations:
//   - Rows: rows materialized in memory, produced by administrative commands
//   - a cursor-backed variant wrapping the live *sql.Rows of a query
//
// Both satisfy the same iteration and release contract, so callers never
// need to know which path produced their rows.
package engine
