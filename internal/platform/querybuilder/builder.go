package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and its positional ($n) arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$" + strconv.Itoa(len(w.args)))
}

// expr writes a fragment, binding each `?` to the next argument. Extra `?`
// without an argument are kept literally.
func (w *sqlWriter) expr(fragment string, args []any) {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(fragment[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			w.buf.WriteString(" WHERE ")
		} else {
			w.buf.WriteString(" AND ")
		}
		cond(w)
	}
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}

// Condition renders one predicate of a WHERE clause.
type Condition func(w *sqlWriter)

func Eq(column string, value any) Condition {
	return func(w *sqlWriter) {
		w.buf.WriteString(column + " = ")
		w.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(w *sqlWriter) {
		w.buf.WriteString(column + " IS NULL")
	}
}

// Expr is a raw predicate with `?` placeholders.
func Expr(fragment string, args ...any) Condition {
	return func(w *sqlWriter) {
		w.expr(fragment, args)
	}
}

// Or joins conditions with OR inside parentheses. An empty Or matches nothing.
func Or(conditions ...Condition) Condition {
	return func(w *sqlWriter) {
		if len(conditions) == 0 {
			w.buf.WriteString("1=0")
			return
		}
		w.buf.WriteByte('(')
		for i, cond := range conditions {
			if i > 0 {
				w.buf.WriteString(" OR ")
			}
			cond(w)
		}
		w.buf.WriteByte(')')
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 || strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select needs columns and a table")
	}

	var w sqlWriter
	w.buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	w.where(b.where)
	return w.result()
}

// InsertBuilder writes a single-row INSERT.
type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = values
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert needs a table and columns")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert into %s has %d values for %d columns", b.table, len(b.values), len(b.columns))
	}

	var w sqlWriter
	w.buf.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(value)
	}
	w.buf.WriteByte(')')
	if b.suffix != "" {
		w.buf.WriteString(" " + b.suffix)
	}
	return w.result()
}

type UpdateBuilder struct {
	table string
	sets  []Condition
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Eq(column, value))
	return b
}

// SetExpr assigns a raw expression such as NOW().
func (b *UpdateBuilder) SetExpr(column, fragment string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, Expr(column+" = "+fragment, args...))
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update needs a table and at least one assignment")
	}

	var w sqlWriter
	w.buf.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		set(&w)
	}
	w.where(b.where)
	return w.result()
}

// DeleteBuilder refuses to build without a WHERE clause.
type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete without conditions is not allowed")
	}

	var w sqlWriter
	w.buf.WriteString("DELETE FROM " + b.table)
	w.where(b.where)
	return w.result()
}
