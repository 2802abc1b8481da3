package query

import (
	"fmt"
	"strings"
	"testing"
)

var netColumns = []string{"timestamp", "destIP", "dnsQuery", "bytesSent", "connectionStatus", "user", "riskScore"}

// pgTestDialect mirrors the PostgreSQL dialect without importing the database package.
type pgTestDialect struct{}

func (pgTestDialect) Placeholder(i int) string       { return fmt.Sprintf("$%d", i) }
func (pgTestDialect) IDColumn() string               { return "id" }
func (pgTestDialect) QuoteColumn(name string) string { return `"` + name + `"` }
func (d pgTestDialect) ContainsSQL(column string, i int) string {
	return fmt.Sprintf(`(CAST(%s AS TEXT) ILIKE %s ESCAPE '\')`, column, d.Placeholder(i))
}

func TestSimplePredicate(t *testing.T) {
	p := Simple("connectionStatus", Equal, "Blocked")
	if p == nil {
		t.Fatal("expected non-nil predicate")
	}

	sql, args := p.WhereClause(nil)
	if sql != `("connectionStatus" = ?)` {
		t.Errorf(`expected '("connectionStatus" = ?)', got '%s'`, sql)
	}
	if len(args) != 1 || args[0] != "Blocked" {
		t.Errorf("expected args ['Blocked'], got %v", args)
	}
}

func TestSimplePredicateInvalidField(t *testing.T) {
	p := Simple("DROP TABLE", Equal, "oops")
	if p != nil {
		t.Error("expected nil for invalid field name")
	}
}

func TestSimplePredicateInvalidOperator(t *testing.T) {
	p := Simple("user", "HACK", "value")
	if p != nil {
		t.Error("expected nil for invalid operator")
	}
}

func TestLikePredicate(t *testing.T) {
	p := Simple("dnsQuery", Like, "github")
	sql, args := p.WhereClause(nil)

	if sql != `("dnsQuery" LIKE ?)` {
		t.Errorf("unexpected sql: %s", sql)
	}
	if len(args) != 1 || args[0] != "%github%" {
		t.Errorf("expected args ['%%github%%'], got %v", args)
	}
}

func TestNotLikePredicate(t *testing.T) {
	p := Simple("destIP", NotLike, "192.168")
	sql, args := p.WhereClause(nil)

	if sql != `("destIP" NOT LIKE ?)` {
		t.Errorf("unexpected sql: %s", sql)
	}
	if len(args) != 1 || args[0] != "%192.168%" {
		t.Errorf("expected args ['%%192.168%%'], got %v", args)
	}
}

func TestNumericPredicateKeepsType(t *testing.T) {
	p := Simple("riskScore", GreaterOrEqual, 7.0)
	_, args := p.WhereClause(nil)
	if len(args) != 1 || args[0] != 7.0 {
		t.Errorf("expected float arg 7, got %v", args)
	}
}

func TestBetweenPredicate(t *testing.T) {
	p := Between("timestamp", "2024-01-20 14:00:00", "2024-01-20 14:30:00")
	sql, args := p.WhereClause(nil)

	if sql != `("timestamp" BETWEEN ? AND ?)` {
		t.Errorf("unexpected sql: %s", sql)
	}
	if len(args) != 2 || args[0] != "2024-01-20 14:00:00" || args[1] != "2024-01-20 14:30:00" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBetweenOpenBounds(t *testing.T) {
	if Between("timestamp", "", "") != nil {
		t.Error("expected nil for fully open range")
	}

	sql, _ := Between("timestamp", "2024-01-20", "").WhereClause(nil)
	if sql != `("timestamp" >= ?)` {
		t.Errorf("unexpected sql for lower bound: %s", sql)
	}

	sql, _ = Between("timestamp", "", "2024-01-21").WhereClause(nil)
	if sql != `("timestamp" <= ?)` {
		t.Errorf("unexpected sql for upper bound: %s", sql)
	}
}

func TestContainsPredicate(t *testing.T) {
	p := Contains("git", "destIP", "dnsQuery", "user")
	sql, args := p.WhereClause(nil)

	want := `((CAST("destIP" AS TEXT) LIKE ? ESCAPE '\') OR (CAST("dnsQuery" AS TEXT) LIKE ? ESCAPE '\') OR (CAST("user" AS TEXT) LIKE ? ESCAPE '\'))`
	if sql != want {
		t.Errorf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 3 || args[2] != "%git%" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestContainsEscapesWildcards(t *testing.T) {
	p := Contains(`50%_off\`, "dnsQuery")
	_, args := p.WhereClause(nil)
	if len(args) != 1 || args[0] != `%50\%\_off\\%` {
		t.Errorf("wildcards not escaped: %v", args)
	}
	if got := EscapeLike("plain"); got != "plain" {
		t.Errorf("EscapeLike(plain) = %q", got)
	}
}

func TestContainsEmpty(t *testing.T) {
	if Contains("", "user") != nil {
		t.Error("expected nil for empty text")
	}
	if Contains("x") != nil {
		t.Error("expected nil for no fields")
	}
	if Contains("x", "user; --") != nil {
		t.Error("expected nil for invalid field")
	}
}

func TestPostgresPlaceholdersNumberInOrder(t *testing.T) {
	p := Combine([]*Predicate{
		Contains("admin", "user", "destIP"),
		Between("timestamp", "a", "b"),
		Simple("riskScore", GreaterOrEqual, 7.0),
	}, AND)

	sql, args := p.WhereClause(pgTestDialect{})
	for i := 1; i <= 5; i++ {
		if !strings.Contains(sql, fmt.Sprintf("$%d", i)) {
			t.Errorf("missing placeholder $%d in %s", i, sql)
		}
	}
	if strings.Contains(sql, "$6") {
		t.Errorf("unexpected extra placeholder in %s", sql)
	}
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}
	if !strings.Contains(sql, "ILIKE $1") {
		t.Errorf("expected ILIKE for postgres: %s", sql)
	}
}

func TestCombineAND(t *testing.T) {
	p1 := Simple("connectionStatus", Equal, "Blocked")
	p2 := Simple("user", Equal, "admin")

	combined := Combine([]*Predicate{p1, p2}, AND)
	sql, args := combined.WhereClause(nil)

	if sql != `(("connectionStatus" = ?) AND ("user" = ?))` {
		t.Errorf("unexpected sql: %s", sql)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestCombineOR(t *testing.T) {
	p1 := Simple("connectionStatus", Equal, "Blocked")
	p2 := Simple("connectionStatus", Equal, "Denied")

	combined := Combine([]*Predicate{p1, p2}, OR)
	sql, _ := combined.WhereClause(nil)

	if sql != `(("connectionStatus" = ?) OR ("connectionStatus" = ?))` {
		t.Errorf("unexpected sql: %s", sql)
	}
}

func TestCombineSingle(t *testing.T) {
	p := Simple("user", Equal, "admin")
	if Combine([]*Predicate{p}, AND) != p {
		t.Error("expected the single predicate back")
	}
}

func TestCombineEmptyAndNils(t *testing.T) {
	if Combine(nil, AND) != nil {
		t.Error("expected nil for empty slice")
	}
	if Combine([]*Predicate{nil, nil}, AND) != nil {
		t.Error("expected nil when all predicates are nil")
	}

	p := Simple("user", Equal, "admin")
	if Combine([]*Predicate{nil, p, nil}, AND) != p {
		t.Error("expected nils to be skipped")
	}
}

func TestNilPredicateWhereClause(t *testing.T) {
	var p *Predicate
	sql, args := p.WhereClause(nil)
	if sql != "" || args != nil {
		t.Errorf("expected empty clause, got %q %v", sql, args)
	}
}

func TestPredicateFields(t *testing.T) {
	p := Combine([]*Predicate{
		Simple("user", Equal, "admin"),
		Contains("x", "user", "destIP"),
		Between("timestamp", "a", "b"),
	}, AND)

	fields := p.Fields()
	want := []string{"user", "destIP", "timestamp"}
	if strings.Join(fields, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, fields)
	}
}

func TestQueryBuildNoPredicates(t *testing.T) {
	q := New("iw_network", []string{"user", "riskScore"}, 0)
	sql, args := q.Build(nil)

	want := `SELECT rowid, "user", "riskScore" FROM iw_network ORDER BY rowid`
	if sql != want {
		t.Errorf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestQueryAddPredicateUnknownColumn(t *testing.T) {
	q := New("iw_network", netColumns, 0)
	if err := q.AddPredicate(Simple("filePath", Equal, "x")); err == nil {
		t.Error("expected error for a column the table lacks")
	}
	if err := q.AddPredicate(nil); err != nil {
		t.Errorf("nil predicate should be ignored, got %v", err)
	}
	if len(q.PredicateFields()) != 0 {
		t.Error("rejected predicate should not be stored")
	}
}

func TestQueryOrderBy(t *testing.T) {
	q := New("iw_network", netColumns, 0)
	if err := q.OrderBy("riskScore", true); err != nil {
		t.Fatalf("OrderBy failed: %v", err)
	}
	sql, _ := q.Build(nil)
	if !strings.HasSuffix(sql, `ORDER BY "riskScore" DESC, rowid`) {
		t.Errorf("unexpected order clause: %s", sql)
	}

	if err := q.OrderBy("evil; DROP", false); err == nil {
		t.Error("expected error for invalid order field")
	}

	if err := q.OrderBy("", false); err != nil {
		t.Fatalf("clearing order failed: %v", err)
	}
	sql, _ = q.Build(nil)
	if !strings.HasSuffix(sql, "ORDER BY rowid") {
		t.Errorf("expected insertion order after clearing: %s", sql)
	}
}

func TestQueryBuildWithPagination(t *testing.T) {
	q := New("iw_network", netColumns, 50)
	q.SetPage(3)
	sql, _ := q.Build(nil)
	if !strings.HasSuffix(sql, "LIMIT 50 OFFSET 100") {
		t.Errorf("unexpected pagination: %s", sql)
	}

	q.SetPage(0)
	if q.PageNumber() != 3 {
		t.Errorf("SetPage(0) should be ignored, page is %d", q.PageNumber())
	}
}

func TestQueryBuildFull(t *testing.T) {
	q := New("iw_network", netColumns, 10)
	if err := q.AddPredicate(Contains("git", "destIP", "dnsQuery")); err != nil {
		t.Fatal(err)
	}
	if err := q.AddPredicate(Between("timestamp", "2024-01-20", "2024-01-21")); err != nil {
		t.Fatal(err)
	}
	if err := q.OrderBy("timestamp", false); err != nil {
		t.Fatal(err)
	}

	sql, args := q.Build(pgTestDialect{})
	if !strings.HasPrefix(sql, `SELECT id, "timestamp", "destIP"`) {
		t.Errorf("unexpected select list: %s", sql)
	}
	if !strings.Contains(sql, `("timestamp" BETWEEN $3 AND $4)`) {
		t.Errorf("unexpected range clause: %s", sql)
	}
	if !strings.Contains(sql, `ORDER BY "timestamp", id LIMIT 10 OFFSET 0`) {
		t.Errorf("unexpected tail: %s", sql)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %d", len(args))
	}
}

func TestQueryBuildCount(t *testing.T) {
	q := New("iw_network", netColumns, 10)
	if err := q.AddPredicate(Simple("connectionStatus", Equal, "Blocked")); err != nil {
		t.Fatal(err)
	}
	sql, args := q.BuildCount(nil)
	if sql != `SELECT COUNT(rowid) FROM iw_network WHERE ("connectionStatus" = ?)` {
		t.Errorf("unexpected count sql: %s", sql)
	}
	if len(args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(args))
	}
}

func TestQueryORLogic(t *testing.T) {
	q := New("iw_network", netColumns, 0)
	q.SetLogic(OR)
	_ = q.AddPredicate(Simple("user", Equal, "admin"))
	_ = q.AddPredicate(Simple("user", Equal, "unknown"))
	sql, _ := q.Build(nil)
	if !strings.Contains(sql, `(("user" = ?) OR ("user" = ?))`) {
		t.Errorf("expected OR logic: %s", sql)
	}

	q.ClearPredicates()
	sql, _ = q.Build(nil)
	if strings.Contains(sql, "WHERE") {
		t.Errorf("expected no WHERE after clearing: %s", sql)
	}
}
