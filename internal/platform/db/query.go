package db

import (
	"fmt"
	"strings"
	"time"
)

// Query accumulates AND-composed predicates and their positional arguments.
type Query struct {
	conds []string
	args  []any
}

func (q *Query) Arg(value any) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *Query) Where(cond string) {
	q.conds = append(q.conds, cond)
}

func (q *Query) Eq(column string, value any) {
	q.Where(column + " = " + q.Arg(value))
}

// Range restricts column to the half-open interval [from, to).
func (q *Query) Range(column string, from, to time.Time) {
	q.Where(fmt.Sprintf("%s >= %s AND %s < %s", column, q.Arg(from), column, q.Arg(to)))
}

func (q *Query) WhereClause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q *Query) LimitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return " LIMIT " + q.Arg(limit)
}

func (q *Query) Args() []any {
	return q.args
}

// Assignments builds the SET list of a partial update.
type Assignments struct {
	sets []string
	args []any
}

func (a *Assignments) Set(column string, value any) {
	a.args = append(a.args, value)
	a.sets = append(a.sets, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

func (a *Assignments) Len() int {
	return len(a.sets)
}

// Update renders an UPDATE for a single row by id. updated_at is always
// refreshed, so an empty patch still touches the row.
func (a *Assignments) Update(table string, id int64, returning string) (string, []any) {
	sets := append(append([]string{}, a.sets...), "updated_at = now()")
	args := append(append([]any{}, a.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args))
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args
}

// SetIf assigns column only when value is non-nil.
func SetIf[T any](a *Assignments, column string, value *T) {
	if value != nil {
		a.Set(column, *value)
	}
}

// DayRange returns the bounds of the calendar day containing t, in t's
// location.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
