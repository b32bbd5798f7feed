// Package core holds the sheet service shared by the HTTP server.
//
// A sheet is a named grid.Grid with an ID. The Service keeps sheets in
// memory, serializes access to each one, and writes changes through to an
// optional Store.
//
// # Mutations
//
// [Service.Mutate] runs a grid operation against a clone of the sheet. The
// clone replaces the live grid only when the operation succeeds and the
// store accepts the new contents, so a rejected InsertRows, DeleteColumn or
// Set leaves both memory and the database untouched:
//
//	snap, err := svc.Mutate(ctx, id, "insert_rows", func(g *grid.Grid) error {
//	    return g.InsertRows(2, 1)
//	})
//
// # Imports
//
// [Service.Import] reads CSV through csvio under an [ImportLimiter] so a
// burst of uploads cannot parse unbounded input in parallel.
//
// # Error Handling
//
// Errors are mapped to user messages with [MapError]:
//
//   - GRD001-GRD003: grid argument, range and state errors
//   - SHT001-SHT002: sheet lookup and persistence errors
//   - FILE001-FILE005: import file errors
//   - IMP001, UPL004-UPL005: import throttling, cancellation and timeouts
package core
