package repository

import "strings"

// Deployments migrated from the old collection-style schema carry a plain
// customer_ref string column instead of the customer_id relation column.
// Queries try the relation column first and fall back to the legacy column
// only on the narrow "unknown column" error, so real failures still surface.

// isUnknownColumnErr reports whether err is the database saying the queried
// column does not exist. Matches Postgres (42703) and SQLite wording.
func isUnknownColumnErr(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, column) {
		return false
	}
	return strings.Contains(msg, "does not exist") || // postgres 42703
		strings.Contains(msg, "no such column") || // sqlite
		strings.Contains(msg, "Unknown column") // mysql wording, seen in tooling
}
