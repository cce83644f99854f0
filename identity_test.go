package cells

import (
	"strings"
	"testing"
)

func TestKeyEquality(t *testing.T) {
	if Key(1) != Key(1) {
		t.Error("Key(1) should equal Key(1)")
	}
	if Key(1) == Key("1") {
		t.Error("Key(1) should differ from Key(\"1\")")
	}
	if Key(nil) != NoID {
		t.Error("Key(nil) should be NoID")
	}
	if !NoID.IsNone() {
		t.Error("NoID should report IsNone")
	}
	if Key(Key("a")) != Key("a") {
		t.Error("Key of an ID should return the ID unchanged")
	}
}

func TestKeyPanicsOnUncomparable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a slice key")
		}
	}()
	Key([]int{1})
}

func TestUnionIsStructural(t *testing.T) {
	a := Key("a")
	if Union(a, 1) != Union(a, 1) {
		t.Error("equal unions should compare equal")
	}
	if Union(Union(a, 1), 2) == Union(Union(a, 2), 1) {
		t.Error("union order should matter")
	}
	if Union(Union(a, 1), 2) == Union(a, "1/2") {
		t.Error("nested union should not collide with a flattened string")
	}
	if Union(a, 1) == Key(1) {
		t.Error("union should not equal its local key")
	}
}

func TestCodeIDPerCallSite(t *testing.T) {
	ids := make([]ID, 2)
	for i := range ids {
		ids[i] = CodeID(0)
	}
	if ids[0] != ids[1] {
		t.Error("the same call site should yield the same id")
	}
	other := CodeID(0)
	if other == ids[0] {
		t.Error("different call sites should yield different ids")
	}
	if !strings.HasPrefix(other.String(), "identity_test.go:") {
		t.Errorf("unexpected call-site string %q", other.String())
	}
}

func TestCodeIDTellsApartCallsOnOneLine(t *testing.T) {
	a, b := CodeID(0), CodeID(0)
	if a == b {
		t.Error("two calls on one line should yield different ids")
	}
	if a.String() != b.String() {
		t.Errorf("both calls should print the same position, got %q and %q", a, b)
	}
}

func TestSyntheticIsDeterministic(t *testing.T) {
	a := synthetic(Key("x"), 1)
	b := synthetic(Key("x"), 1)
	if a != b {
		t.Error("synthetic ids should be deterministic")
	}
	if a == synthetic(Key("x"), 2) {
		t.Error("different repeats should yield different ids")
	}
	if !a.IsSynthetic() {
		t.Error("expected IsSynthetic")
	}
	if a.Value() != nil {
		t.Errorf("synthetic Value should be nil, got %v", a.Value())
	}
}

func TestIDStrings(t *testing.T) {
	tests := []struct {
		id   ID
		str  string
		gost string
	}{
		{NoID, "<none>", "cells.NoID"},
		{Key(7), "7", "cells.Key(7)"},
		{Key("7"), "7", `cells.Key("7")`},
		{Union(Key("s"), 2), "s/2", `cells.Union(cells.Key("s"), 2)`},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.id.GoString(); got != tt.gost {
			t.Errorf("GoString() = %q, want %q", got, tt.gost)
		}
	}
}
