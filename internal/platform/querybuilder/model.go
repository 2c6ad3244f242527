package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertOptions shapes the ON CONFLICT clause built by UpsertModel.
type UpsertOptions struct {
	ConflictColumns []string
	// Preserve lists columns an existing row keeps, e.g. created_at.
	Preserve []string
	// SetExprs are appended verbatim after the EXCLUDED assignments.
	SetExprs []string
}

// UpsertModel builds INSERT ... ON CONFLICT DO UPDATE from the `db` tags of a
// struct, copying every non-conflict, non-preserved column from EXCLUDED.
// Unexported fields and `db:"-"` are skipped.
func UpsertModel(table string, model any, opts UpsertOptions) (string, []any, error) {
	if len(opts.ConflictColumns) == 0 {
		return "", nil, fmt.Errorf("upsert into %s requires conflict columns", table)
	}

	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	skip := make(map[string]struct{}, len(opts.ConflictColumns)+len(opts.Preserve))
	for _, col := range opts.ConflictColumns {
		skip[col] = struct{}{}
	}
	for _, col := range opts.Preserve {
		skip[col] = struct{}{}
	}

	assignments := make([]string, 0, len(cols)+len(opts.SetExprs))
	for _, col := range cols {
		if _, ok := skip[col]; ok {
			continue
		}
		assignments = append(assignments, col+" = EXCLUDED."+col)
	}
	assignments = append(assignments, opts.SetExprs...)

	suffix := "ON CONFLICT (" + strings.Join(opts.ConflictColumns, ", ") + ")"
	if len(assignments) == 0 {
		suffix += " DO NOTHING"
	} else {
		suffix += " DO UPDATE SET " + strings.Join(assignments, ", ")
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
