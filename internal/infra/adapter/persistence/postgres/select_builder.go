package postgres

import (
	"fmt"
	"strconv"
	"strings"
)

// selectBuilder assembles a parameterized SELECT for the catalog queries.
// Every value is bound as a $N placeholder numbered in the order it was added.
type selectBuilder struct {
	columns    []string
	table      string
	conditions []string
	groupBy    []string
	orderBy    []string
	args       []interface{}
	limit      string
	offset     string
}

func newSelect(table string, columns ...string) *selectBuilder {
	return &selectBuilder{table: table, columns: columns}
}

func (b *selectBuilder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// WhereILike adds a case-insensitive substring match on col.
// LIKE metacharacters in term match literally.
func (b *selectBuilder) WhereILike(col, term string) *selectBuilder {
	b.conditions = append(b.conditions, fmt.Sprintf("%s ILIKE %s", col, b.bind("%"+EscapeLike(term)+"%")))
	return b
}

func (b *selectBuilder) WhereEq(col string, v interface{}) *selectBuilder {
	b.conditions = append(b.conditions, fmt.Sprintf("%s = %s", col, b.bind(v)))
	return b
}

func (b *selectBuilder) WhereNotNull(col string) *selectBuilder {
	b.conditions = append(b.conditions, col+" IS NOT NULL")
	return b
}

// WhereWithinDays keeps rows whose col is later than now minus days.
// days is bound, never interpolated.
func (b *selectBuilder) WhereWithinDays(col string, days int) *selectBuilder {
	b.conditions = append(b.conditions, fmt.Sprintf("%s > now() - make_interval(days => %s)", col, b.bind(days)))
	return b
}

func (b *selectBuilder) GroupBy(cols ...string) *selectBuilder {
	b.groupBy = append(b.groupBy, cols...)
	return b
}

// OrderBy appends sort keys such as "region ASC".
func (b *selectBuilder) OrderBy(keys ...string) *selectBuilder {
	b.orderBy = append(b.orderBy, keys...)
	return b
}

func (b *selectBuilder) Limit(n int) *selectBuilder {
	b.limit = b.bind(n)
	return b
}

func (b *selectBuilder) Offset(n int) *selectBuilder {
	b.offset = b.bind(n)
	return b
}

// Build returns the statement and its arguments.
func (b *selectBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	if len(b.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conditions, " AND "))
	}
	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit != "" {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.limit)
	}
	if b.offset != "" {
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.offset)
	}
	return sb.String(), b.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE metacharacters using the default backslash escape.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
