package query

import (
	"fmt"
	"strings"
)

type fragment struct {
	sql  string
	args []interface{}
}

// Builder assembles a SELECT with optional filter fragments and a mirrored COUNT.
// Fragments use "?" placeholders and keep the order they were added in, so a given
// filter set always yields the same statement text. Callers rebind placeholders for
// their driver.
type Builder struct {
	selectClause string
	from         string
	countExpr    string
	where        []fragment
	orderBy      string
	page         *Page
}

// New starts a statement "SELECT <selectClause> FROM <from>".
func New(selectClause, from string) *Builder {
	return &Builder{selectClause: selectClause, from: from, countExpr: "COUNT(*)"}
}

// Where adds a predicate fragment joined with AND.
func (b *Builder) Where(sql string, args ...interface{}) *Builder {
	b.where = append(b.where, fragment{sql: sql, args: args})
	return b
}

// WhereIf adds the fragment only when cond holds.
func (b *Builder) WhereIf(cond bool, sql string, args ...interface{}) *Builder {
	if cond {
		return b.Where(sql, args...)
	}
	return b
}

// Search adds a case-insensitive substring match across columns. An empty term adds nothing.
func (b *Builder) Search(term string, columns ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
		args[i] = pattern
	}
	return b.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// OrderBy sets the fixed ORDER BY clause. Never pass user input here.
func (b *Builder) OrderBy(clause string) *Builder {
	b.orderBy = clause
	return b
}

// CountExpr replaces the COUNT(*) expression, e.g. for joins that need COUNT(DISTINCT ...).
func (b *Builder) CountExpr(expr string) *Builder {
	b.countExpr = expr
	return b
}

// Paginate appends LIMIT/OFFSET for the page.
func (b *Builder) Paginate(p Page) *Builder {
	normalised := NewPage(p.Number, p.Limit)
	b.page = &normalised
	return b
}

// Build renders the list statement and its arguments.
func (b *Builder) Build() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.selectClause)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	args := b.writeWhere(&sb)
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.page != nil {
		// NewPage bounds Limit and Number, so Offset cannot overflow.
		fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", b.page.Limit, b.page.Offset())
	}
	return sb.String(), args
}

// BuildCount renders the COUNT statement mirroring every filter fragment.
func (b *Builder) BuildCount() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.countExpr)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	args := b.writeWhere(&sb)
	return sb.String(), args
}

func (b *Builder) writeWhere(sb *strings.Builder) []interface{} {
	args := make([]interface{}, 0, len(b.where))
	if len(b.where) == 0 {
		return args
	}
	sb.WriteString(" WHERE ")
	for i, f := range b.where {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(f.sql)
		args = append(args, f.args...)
	}
	return args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
