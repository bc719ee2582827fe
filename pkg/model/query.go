package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Action is the statement kind a Query compiles to.
type Action uint8

const (
	ActionSelect Action = iota
	ActionCount
	ActionInsert
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionCount:
		return "count"
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "action(" + strconv.Itoa(int(a)) + ")"
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteIdentifier wraps name in double quotes, doubling any embedded quote.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// Query describes a single-table statement. It carries column names only:
// every value reaches storage as a named parameter (@column), never as SQL text.
//
// Columns is the select list for ActionSelect, the insert column list for
// ActionInsert and the SET list for ActionUpdate. Where holds equality
// predicates joined with AND.
type Query struct {
	Table     string
	Columns   []string
	Where     []string
	Returning []string
	Limit     int
	Action    Action
}

// Statement is a compiled Query: SQL text plus the ordered, de-duplicated
// parameter names it references.
type Statement struct {
	SQL    string
	Params []string
}

// Bind builds the parameter map for rec. Keys of rec that the statement does
// not reference are ignored; a referenced name missing from rec is an error.
func (s Statement) Bind(rec Record) (Params, error) {
	params := make(Params, len(s.Params))
	for _, name := range s.Params {
		v, ok := rec[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingValue, name)
		}
		params[name] = v
	}
	return params, nil
}

// Build validates every identifier and compiles the query.
func (q Query) Build() (Statement, error) {
	if err := q.validate(); err != nil {
		return Statement{}, err
	}

	var (
		b     strings.Builder
		names []string
	)

	switch q.Action {
	case ActionSelect:
		b.WriteString("SELECT ")
		b.WriteString(selectList(q.Columns))
		b.WriteString(" FROM ")
		b.WriteString(QuoteIdentifier(q.Table))
		names = writeWhere(&b, q.Where, names)
		if q.Limit > 0 {
			b.WriteString(" LIMIT ")
			b.WriteString(strconv.Itoa(q.Limit))
		}

	case ActionCount:
		b.WriteString("SELECT COUNT(1) FROM ")
		b.WriteString(QuoteIdentifier(q.Table))
		names = writeWhere(&b, q.Where, names)

	case ActionInsert:
		if len(q.Columns) == 0 {
			return Statement{}, ErrNoColumns
		}
		b.WriteString("INSERT INTO ")
		b.WriteString(QuoteIdentifier(q.Table))
		b.WriteString(" (")
		for i, col := range q.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(QuoteIdentifier(col))
		}
		b.WriteString(") VALUES (")
		for i, col := range q.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("@")
			b.WriteString(col)
			names = appendName(names, col)
		}
		b.WriteString(")")
		writeReturning(&b, q.Returning)

	case ActionUpdate:
		if len(q.Columns) == 0 {
			return Statement{}, ErrNoColumns
		}
		if len(q.Where) == 0 {
			return Statement{}, ErrNoPredicates
		}
		b.WriteString("UPDATE ")
		b.WriteString(QuoteIdentifier(q.Table))
		b.WriteString(" SET ")
		for i, col := range q.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(QuoteIdentifier(col))
			b.WriteString(" = @")
			b.WriteString(col)
			names = appendName(names, col)
		}
		names = writeWhere(&b, q.Where, names)

	case ActionDelete:
		if len(q.Where) == 0 {
			return Statement{}, ErrNoPredicates
		}
		b.WriteString("DELETE FROM ")
		b.WriteString(QuoteIdentifier(q.Table))
		names = writeWhere(&b, q.Where, names)

	default:
		return Statement{}, fmt.Errorf("%w: %s", ErrUnknownAction, q.Action)
	}

	return Statement{SQL: b.String(), Params: names}, nil
}

func (q Query) validate() error {
	if err := checkIdentifier(q.Table); err != nil {
		return err
	}
	for _, col := range q.Columns {
		if col == "*" && q.Action == ActionSelect && len(q.Columns) == 1 {
			continue
		}
		if err := checkIdentifier(col); err != nil {
			return err
		}
	}
	for _, col := range q.Where {
		if err := checkIdentifier(col); err != nil {
			return err
		}
	}
	for _, col := range q.Returning {
		if err := checkIdentifier(col); err != nil {
			return err
		}
	}
	return nil
}

func selectList(columns []string) string {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		return "*"
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = QuoteIdentifier(col)
	}
	return strings.Join(quoted, ", ")
}

func writeWhere(b *strings.Builder, where []string, names []string) []string {
	for i, col := range where {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(QuoteIdentifier(col))
		b.WriteString(" = @")
		b.WriteString(col)
		names = appendName(names, col)
	}
	return names
}

func writeReturning(b *strings.Builder, returning []string) {
	if len(returning) == 0 {
		return
	}
	b.WriteString(" RETURNING ")
	for i, col := range returning {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(QuoteIdentifier(col))
	}
}

func appendName(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
