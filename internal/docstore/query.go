package docstore

import (
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
)

// Order sorts query results by a top-level body attribute. CreatedAt is
// special-cased onto the indexed column so the ordering stays stable for
// RFC 3339 timestamps with truncated fractions.
type Order struct {
	Field   string
	Desc    bool
	Numeric bool
}

// Query is an equality-filter conjunction over top-level body attributes,
// optionally pinned to one partition or one id. An id filter without a
// partition is a cross-partition scan.
type Query struct {
	ID        string
	Partition string
	Filters   map[string]any
	OrderBy   []Order
	Limit     int
}

// buildSelect renders the query into one parameterized SQL statement.
func buildSelect(table string, q Query) (string, []any, error) {
	sb := sq.Select("body").From(table).PlaceholderFormat(sq.Dollar)

	if q.ID != "" {
		sb = sb.Where(sq.Eq{"id": q.ID})
	}
	if q.Partition != "" {
		sb = sb.Where(sq.Eq{"partition_key": q.Partition})
	}

	// Deterministic placeholder numbering regardless of map iteration.
	fields := make([]string, 0, len(q.Filters))
	for f := range q.Filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		sb = sb.Where(sq.Expr("body->>? = ?", f, fmt.Sprint(q.Filters[f])))
	}

	for _, o := range q.OrderBy {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		switch {
		case o.Field == "createdAt":
			sb = sb.OrderBy("created_at " + dir)
		case o.Numeric:
			sb = sb.OrderBy(fmt.Sprintf("(body->>'%s')::numeric %s", o.Field, dir))
		default:
			sb = sb.OrderBy(fmt.Sprintf("body->>'%s' %s", o.Field, dir))
		}
	}

	if q.Limit > 0 {
		sb = sb.Limit(uint64(q.Limit))
	}

	return sb.ToSql()
}
