package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 decodes a timestamp column stored as RFC3339 text.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s timestamp: %w", column, err)
	}
	return t, nil
}

// appendPagination adds LIMIT/OFFSET clauses for positive filter values.
// SQLite rejects a bare OFFSET, so an offset without a limit gets LIMIT -1
// (unlimited).
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
