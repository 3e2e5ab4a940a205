package authz

import (
	"fmt"
	"strings"
)

// Query accumulates the annotations and filters contributed by rules.
// Building it performs no I/O; the composed SQL runs once, at resolution
// time.
type Query struct {
	res          Resource
	principalArg string
	annotations  []annotation
	filters      []string
}

type annotation struct {
	alias string
	expr  string
}

func newQuery(res Resource, principalArg string) *Query {
	return &Query{res: res, principalArg: principalArg}
}

// Resource returns the descriptor the query resolves against.
func (q *Query) Resource() Resource { return q.res }

// PrincipalArg returns the placeholder bound to the acting user id.
func (q *Query) PrincipalArg() string { return q.principalArg }

// CourseRef returns the column expression holding the owning course id.
func (q *Query) CourseRef() string {
	return "t." + q.res.CourseIDCol
}

// Annotate registers a boolean SELECT expression under the given alias.
// Rules share annotations: registering the same alias twice is a no-op,
// which lets IsEnrolled reuse the instructor flag.
func (q *Query) Annotate(alias, expr string) {
	for _, a := range q.annotations {
		if a.alias == alias {
			return
		}
	}
	q.annotations = append(q.annotations, annotation{alias: alias, expr: expr})
}

// Filter appends a list-mode WHERE condition.
func (q *Query) Filter(expr string) {
	q.filters = append(q.filters, expr)
}

// singleSQL renders the single-object lookup. The principal id binds to
// the principal placeholder and the object id to the one that follows it.
// The WHERE clause pins the principal placeholder even when no rule
// references it: pgx prepares every statement, and Postgres rejects a
// prepared statement with a parameter the SQL never uses.
func (q *Query) singleSQL() string {
	cols := []string{"t.id", q.CourseRef()}
	if q.res.CreatorCol != "" {
		cols = append(cols, "t."+q.res.CreatorCol)
	} else {
		cols = append(cols, "0")
	}
	for _, a := range q.annotations {
		cols = append(cols, a.expr)
	}
	return fmt.Sprintf(
		"SELECT %s FROM %s t WHERE t.id = $2 AND %s::bigint IS NOT NULL",
		strings.Join(cols, ", "), q.res.Table, q.principalArg,
	)
}

// predicate renders the list-mode filters as a single WHERE condition.
func (q *Query) predicate() string {
	if len(q.filters) == 0 {
		return "TRUE"
	}
	return strings.Join(q.filters, " AND ")
}
