// Package query builds parameterized SELECT statements against a domain
// table of the log store.
package query

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Logic determines how multiple predicates are combined.
type Logic int

const (
	AND Logic = iota
	OR
)

// Operator represents a SQL comparison operator.
type Operator string

const (
	Equal          Operator = "="
	NotEqual       Operator = "!="
	Like           Operator = "LIKE"
	NotLike        Operator = "NOT LIKE"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
)

// validOperators is the set of allowed operators for validation.
var validOperators = map[Operator]bool{
	Equal: true, NotEqual: true, Like: true, NotLike: true,
	GreaterOrEqual: true, LessOrEqual: true,
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Predicate represents a single filter condition or a composite of conditions.
// Predicates use parameterized values to prevent SQL injection.
type Predicate struct {
	kind   predicateKind
	field  string
	fields []string
	op     Operator
	value  interface{}
	low    interface{}
	high   interface{}
	left   *Predicate
	right  *Predicate
	logic  Logic
}

type predicateKind int

const (
	predNone predicateKind = iota
	predSimple
	predBetween
	predContains
	predComposite
)

// Simple creates a predicate that compares a field to a value.
// Returns nil if the field name is not an identifier or the operator is unrecognized.
func Simple(field string, op Operator, value interface{}) *Predicate {
	if !identRe.MatchString(field) || !validOperators[op] {
		return nil
	}
	return &Predicate{
		kind:  predSimple,
		field: field,
		op:    op,
		value: value,
	}
}

// Between creates an inclusive range predicate. An empty bound is open, and
// with both bounds empty the predicate is nil.
func Between(field string, low, high string) *Predicate {
	if !identRe.MatchString(field) {
		return nil
	}
	switch {
	case low == "" && high == "":
		return nil
	case low == "":
		return Simple(field, LessOrEqual, high)
	case high == "":
		return Simple(field, GreaterOrEqual, low)
	}
	return &Predicate{kind: predBetween, field: field, low: low, high: high}
}

// Contains matches text case-insensitively as a substring of any of the
// fields. An empty text or field list yields nil.
func Contains(text string, fields ...string) *Predicate {
	if text == "" || len(fields) == 0 {
		return nil
	}
	for _, f := range fields {
		if !identRe.MatchString(f) {
			return nil
		}
	}
	return &Predicate{kind: predContains, fields: fields, value: text}
}

// Combine joins multiple predicates with the given logic (AND or OR).
// Returns nil for an empty slice. Returns the single predicate if only one is given.
// Nil predicates in the slice are skipped.
func Combine(preds []*Predicate, logic Logic) *Predicate {
	filtered := make([]*Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			filtered = append(filtered, p)
		}
	}

	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}

	result := &Predicate{
		kind:  predComposite,
		left:  filtered[0],
		right: filtered[1],
		logic: logic,
	}
	for i := 2; i < len(filtered); i++ {
		result = &Predicate{
			kind:  predComposite,
			left:  result,
			right: filtered[i],
			logic: logic,
		}
	}
	return result
}

// builder accumulates arguments so placeholders are numbered in order.
type builder struct {
	d    QueryDialect
	args []interface{}
}

func (b *builder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

// WhereClause returns the SQL WHERE fragment and its parameter values
// rendered for dialect d (DefaultDialect when nil).
// For example: `("user" = ?)`, []interface{}{"admin"}
func (p *Predicate) WhereClause(d QueryDialect) (string, []interface{}) {
	if d == nil {
		d = DefaultDialect
	}
	b := &builder{d: d}
	sql := p.render(b)
	return sql, b.args
}

func (p *Predicate) render(b *builder) string {
	if p == nil {
		return ""
	}

	switch p.kind {
	case predSimple:
		col := b.d.QuoteColumn(p.field)
		if p.op == Like || p.op == NotLike {
			return fmt.Sprintf("(%s %s %s)", col, p.op, b.bind(fmt.Sprintf("%%%v%%", p.value)))
		}
		return fmt.Sprintf("(%s %s %s)", col, p.op, b.bind(p.value))

	case predBetween:
		col := b.d.QuoteColumn(p.field)
		lo := b.bind(p.low)
		hi := b.bind(p.high)
		return fmt.Sprintf("(%s BETWEEN %s AND %s)", col, lo, hi)

	case predContains:
		pattern := "%" + EscapeLike(fmt.Sprint(p.value)) + "%"
		parts := make([]string, len(p.fields))
		for i, f := range p.fields {
			b.args = append(b.args, pattern)
			parts[i] = b.d.ContainsSQL(b.d.QuoteColumn(f), len(b.args))
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, " OR ") + ")"

	case predComposite:
		leftSQL := p.left.render(b)
		rightSQL := p.right.render(b)

		if leftSQL == "" {
			return rightSQL
		}
		if rightSQL == "" {
			return leftSQL
		}

		logicStr := "AND"
		if p.logic == OR {
			logicStr = "OR"
		}
		return fmt.Sprintf("(%s %s %s)", leftSQL, logicStr, rightSQL)

	default:
		return ""
	}
}

// Fields returns the list of field names referenced by this predicate tree.
func (p *Predicate) Fields() []string {
	if p == nil {
		return nil
	}

	switch p.kind {
	case predSimple, predBetween:
		return []string{p.field}
	case predContains:
		return slices.Clone(p.fields)
	case predComposite:
		seen := make(map[string]bool)
		var result []string
		for _, f := range append(p.left.Fields(), p.right.Fields()...) {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
		return result
	default:
		return nil
	}
}

// Query builds a full SELECT statement over one table from predicates,
// ordering, and pagination.
type Query struct {
	table      string
	columns    []string
	predicates []*Predicate
	logic      Logic
	orderBy    string
	desc       bool
	pageSize   int
	page       int
}

// New creates a new Query over table with the given columns in select order.
// Pass 0 for pageSize for no pagination.
func New(table string, columns []string, pageSize int) *Query {
	return &Query{
		table:    table,
		columns:  columns,
		logic:    AND,
		pageSize: pageSize,
		page:     1,
	}
}

// Table returns the table the query reads.
func (q *Query) Table() string {
	return q.table
}

// Columns returns the selected columns, excluding the id column.
func (q *Query) Columns() []string {
	return q.columns
}

// SetLogic sets how top-level predicates are combined (AND or OR).
func (q *Query) SetLogic(logic Logic) {
	q.logic = logic
}

// AddPredicate appends a predicate to the query. Nil predicates are ignored.
// Returns an error if the predicate references a column the table lacks.
func (q *Query) AddPredicate(p *Predicate) error {
	if p == nil {
		return nil
	}
	for _, f := range p.Fields() {
		if !q.hasColumn(f) {
			return fmt.Errorf("invalid field %s for table %s", f, q.table)
		}
	}
	q.predicates = append(q.predicates, p)
	return nil
}

// ClearPredicates removes all predicates from the query.
func (q *Query) ClearPredicates() {
	q.predicates = nil
}

// OrderBy sets the column to sort results by and its direction.
// Pass an empty string to restore insertion order.
// Returns an error if the field name is not a column of the table.
func (q *Query) OrderBy(field string, desc bool) error {
	if field == "" {
		q.orderBy = ""
		q.desc = false
		return nil
	}
	if !q.hasColumn(field) {
		return fmt.Errorf("invalid order by field: %s", field)
	}
	q.orderBy = field
	q.desc = desc
	return nil
}

// SetPage sets the current page number (1-based).
func (q *Query) SetPage(page int) {
	if page >= 1 {
		q.page = page
	}
}

// PageNumber returns the current page number (1-based).
func (q *Query) PageNumber() int {
	return q.page
}

// Build generates the full SQL SELECT statement and its parameter values.
// The id column is selected first, followed by the table columns in order.
func (q *Query) Build(d QueryDialect) (string, []interface{}) {
	if d == nil {
		d = DefaultDialect
	}

	selectFields := make([]string, 0, len(q.columns)+1)
	selectFields = append(selectFields, d.IDColumn())
	for _, c := range q.columns {
		selectFields = append(selectFields, d.QuoteColumn(c))
	}
	sql := "SELECT " + strings.Join(selectFields, ", ") + " FROM " + q.table

	whereSQL, args := q.where(d)
	if whereSQL != "" {
		sql += " WHERE " + whereSQL
	}

	if q.orderBy != "" {
		sql += " ORDER BY " + d.QuoteColumn(q.orderBy)
		if q.desc {
			sql += " DESC"
		}
		sql += ", " + d.IDColumn()
	} else {
		sql += " ORDER BY " + d.IDColumn()
	}

	if q.pageSize > 0 {
		offset := q.pageSize * (q.page - 1)
		sql += fmt.Sprintf(" LIMIT %d OFFSET %d", q.pageSize, offset)
	}

	return sql, args
}

// BuildCount generates a COUNT query using the same predicates.
func (q *Query) BuildCount(d QueryDialect) (string, []interface{}) {
	if d == nil {
		d = DefaultDialect
	}
	sql := "SELECT COUNT(" + d.IDColumn() + ") FROM " + q.table
	whereSQL, args := q.where(d)
	if whereSQL != "" {
		sql += " WHERE " + whereSQL
	}
	return sql, args
}

func (q *Query) where(d QueryDialect) (string, []interface{}) {
	combined := Combine(q.predicates, q.logic)
	if combined == nil {
		return "", nil
	}
	return combined.WhereClause(d)
}

// PredicateFields returns all field names referenced across all predicates.
func (q *Query) PredicateFields() []string {
	seen := make(map[string]bool)
	var result []string
	for _, p := range q.predicates {
		for _, f := range p.Fields() {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
	}
	return result
}

func (q *Query) hasColumn(name string) bool {
	return slices.Contains(q.columns, name)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so s matches literally inside a
// pattern. Dialects declare '\' as the escape character in ContainsSQL.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
