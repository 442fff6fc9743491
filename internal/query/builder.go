// Package query builds parameterized SQL for the partial-update and
// paginated-search patterns shared by every repository. Statements are
// assembled from placeholders only; caller-supplied values never become
// part of the SQL text. The build step is pure so it can be tested
// without a database; execution stays in the repositories.
package query

import (
	"fmt"
	"strings"
)

// UpdateQuery is the result of BuildUpdate: the statement text and the
// bound parameters in matching order (SET values first, primary key last).
type UpdateQuery struct {
	SQL  string
	Args []any
}

// BuildUpdate builds an UPDATE statement for a partial payload. Keys not
// present in allowed are dropped silently: clients may echo back a full
// resource (primary key, timestamps and all) and only the mutable columns
// are written. Parameters are assigned in allow-list order so the
// statement is deterministic for a given payload.
//
// Returns ErrNoFieldsToUpdate when nothing survives the filter; no I/O
// has happened at that point.
func BuildUpdate(table, pkCol string, pkVal any, payload map[string]any, allowed []string) (UpdateQuery, error) {
	sets := make([]string, 0, len(allowed))
	args := make([]any, 0, len(allowed)+1)
	for _, col := range allowed {
		v, ok := payload[col]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return UpdateQuery{}, ErrNoFieldsToUpdate
	}
	args = append(args, pkVal)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, strings.Join(sets, ", "), pkCol)
	return UpdateQuery{SQL: sql, Args: args}, nil
}

// SearchQuery accumulates WHERE predicates for a paginated list. All
// predicates are ANDed; AddSearchGroup contributes a single
// parenthesised OR-group so the term search composes with equality
// filters. Placeholder positions are tracked internally: conditions and
// arguments are appended in lockstep, so there is no manual counter to
// get wrong.
type SearchQuery struct {
	table   string
	columns string
	orderBy string
	conds   []string
	args    []any
	page    int
	limit   int
}

// NewSearch starts a query against table, selecting columns and sorting
// by orderBy. Page is clamped to >= 1 and limit into [1,100]; table,
// columns and orderBy must be trusted identifiers owned by the caller,
// never request input.
func NewSearch(table, columns, orderBy string, page, limit int) *SearchQuery {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return &SearchQuery{table: table, columns: columns, orderBy: orderBy, page: page, limit: limit}
}

// AddCondition appends an equality predicate bound as its own
// parameter. Empty string values are skipped so handlers can pass query
// params through without pre-filtering.
func (q *SearchQuery) AddCondition(col string, val any) *SearchQuery {
	if s, ok := val.(string); ok && s == "" {
		return q
	}
	q.conds = append(q.conds, col+" = ?")
	q.args = append(q.args, val)
	return q
}

// AddSearchGroup appends one parenthesised OR-group of case-insensitive
// substring matches over cols. A blank term is a no-op, leaving the
// query unconstrained (a full paginated scan is documented behavior,
// not an error).
func (q *SearchQuery) AddSearchGroup(cols []string, term string) *SearchQuery {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(term) + "%"
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, "LOWER("+col+") LIKE ?")
		q.args = append(q.args, pattern)
	}
	q.conds = append(q.conds, "("+strings.Join(parts, " OR ")+")")
	return q
}

// where returns the combined condition, defaulting to 1=1 so the
// statements stay well-formed with no predicates.
func (q *SearchQuery) where() string {
	if len(q.conds) == 0 {
		return "1=1"
	}
	return strings.Join(q.conds, " AND ")
}

// CountSQL returns the COUNT(*) statement sharing the WHERE clause of
// DataSQL, without LIMIT/OFFSET, plus its arguments. The two statements
// are independent reads and may run concurrently.
func (q *SearchQuery) CountSQL() (string, []any) {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", q.table, q.where())
	return sql, append([]any{}, q.args...)
}

// DataSQL returns the row statement with ORDER BY, LIMIT and OFFSET
// appended, plus its arguments (filters first, then limit and offset).
func (q *SearchQuery) DataSQL() (string, []any) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		q.columns, q.table, q.where(), q.orderBy)
	args := append([]any{}, q.args...)
	args = append(args, q.limit, (q.page-1)*q.limit)
	return sql, args
}

// Page returns the clamped page number.
func (q *SearchQuery) Page() int { return q.page }

// Limit returns the clamped page size.
func (q *SearchQuery) Limit() int { return q.limit }
