package asm

import "testing"

func TestOffsetTableDefineAndLookup(t *testing.T) {
	tbl := newOffsetTable()
	if tbl.Defined("loop") {
		t.Fatalf("Defined(loop) = true before Define")
	}
	tbl.Define("loop", 17)
	if !tbl.Defined("loop") {
		t.Fatalf("Defined(loop) = false after Define")
	}
	off, ok := tbl.Lookup("loop")
	if !ok || off != 17 {
		t.Fatalf("Lookup(loop) = %d, %v, want 17, true", off, ok)
	}
	if _, ok := tbl.Lookup("missing"); ok {
		t.Fatalf("Lookup(missing) = true, want false")
	}
}

func TestReservationTableAllocatesContiguously(t *testing.T) {
	tbl := newReservationTable()
	a, err := tbl.Reserve("a", 10)
	if err != nil {
		t.Fatalf("Reserve(a, 10): %v", err)
	}
	if a.Base != 0 {
		t.Fatalf("a.Base = %d, want 0", a.Base)
	}
	b, err := tbl.Reserve("b", 20)
	if err != nil {
		t.Fatalf("Reserve(b, 20): %v", err)
	}
	if b.Base != 10 {
		t.Fatalf("b.Base = %d, want 10", b.Base)
	}
	got, ok := tbl.Lookup("b")
	if !ok || got != b {
		t.Fatalf("Lookup(b) = %+v, %v, want %+v, true", got, ok, b)
	}
}

func TestReservationTableRejectsZeroSize(t *testing.T) {
	tbl := newReservationTable()
	if _, err := tbl.Reserve("a", 0); err == nil {
		t.Fatalf("Reserve(a, 0): expected error")
	}
}

func TestReservationTableRejectsMemoryExhaustion(t *testing.T) {
	tbl := newReservationTable()
	if _, err := tbl.Reserve("huge", 65537); err == nil {
		t.Fatalf("Reserve(huge, 65537): expected error")
	}
	if _, err := tbl.Reserve("a", 65536); err != nil {
		t.Fatalf("Reserve(a, 65536): unexpected error: %v", err)
	}
	if _, err := tbl.Reserve("b", 1); err == nil {
		t.Fatalf("Reserve(b, 1) after exhausting memory: expected error")
	}
}
