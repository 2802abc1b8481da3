package model

import "testing"

func TestRecordDefaults(t *testing.T) {
	r := Record{}

	if r.Has("user") {
		t.Error("expected empty record to have no user")
	}
	if r.String("user") != "" {
		t.Errorf("expected empty string, got %q", r.String("user"))
	}
	if _, ok := r.Number("riskScore"); ok {
		t.Error("expected no number for missing key")
	}
}

func TestRecordHas(t *testing.T) {
	r := Record{"a": "", "b": "x", "c": 0.0, "d": nil}

	if r.Has("a") {
		t.Error("empty string should not count as present")
	}
	if !r.Has("b") {
		t.Error("expected b to be present")
	}
	if !r.Has("c") {
		t.Error("zero number should count as present")
	}
	if r.Has("d") {
		t.Error("nil should not count as present")
	}
}

func TestRecordString(t *testing.T) {
	r := Record{"f": 15.2, "i": 300.0, "n": 42, "s": "hello"}

	tests := map[string]string{"f": "15.2", "i": "300", "n": "42", "s": "hello"}
	for key, want := range tests {
		if got := r.String(key); got != want {
			t.Errorf("String(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestRecordNumber(t *testing.T) {
	r := Record{"num": 7.0, "str": " 12.5 ", "bad": "abc", "int": int64(3)}

	if n, ok := r.Number("num"); !ok || n != 7 {
		t.Errorf("expected 7, got %v %v", n, ok)
	}
	if n, ok := r.Number("str"); !ok || n != 12.5 {
		t.Errorf("expected 12.5 from numeric string, got %v %v", n, ok)
	}
	if _, ok := r.Number("bad"); ok {
		t.Error("expected non-numeric string to fail")
	}
	if n := r.Float("int"); n != 3 {
		t.Errorf("expected 3, got %v", n)
	}
}

func TestRecordContainsAndIs(t *testing.T) {
	r := Record{"path": `C:\temp\Suspicious.exe`, "status": "Denied"}

	if !r.Contains("path", "TEMP") {
		t.Error("expected case-insensitive contains")
	}
	if !r.Is("status", "denied") {
		t.Error("expected case-insensitive equality")
	}
	if r.Is("status", "Allowed") {
		t.Error("unexpected match")
	}
}

func TestRecordClone(t *testing.T) {
	r := Record{"user": "admin"}
	c := r.Clone()
	c["user"] = "other"

	if r.String("user") != "admin" {
		t.Error("clone should not share storage with the original")
	}
}

func TestParseDomainID(t *testing.T) {
	if _, ok := ParseDomainID("network"); !ok {
		t.Error("expected network to be valid")
	}
	if _, ok := ParseDomainID("payroll"); ok {
		t.Error("expected unknown domain to be invalid")
	}
	if len(DomainIDs) != 10 {
		t.Errorf("expected 10 domains, got %d", len(DomainIDs))
	}
}
