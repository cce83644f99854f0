package cells

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/google/uuid"
)

// ID is an opaque identity for cells and sections.
// IDs are comparable and usable as map keys. The zero value is NoID.
type ID struct {
	key any
}

// NoID is the identity of a descriptor nobody gave an id to.
var NoID ID

// Key wraps an explicit caller-supplied key.
// The value must be comparable; anything else panics here rather than
// later inside a map insert.
func Key(v any) ID {
	if v == nil {
		return NoID
	}
	if id, ok := v.(ID); ok {
		return id
	}
	if !reflect.TypeOf(v).Comparable() {
		panic(fmt.Sprintf("cells: key of type %T is not comparable", v))
	}
	return ID{key: v}
}

// codeID identifies a call site. pc tells apart calls on the same line.
type codeID struct {
	file string
	line int
	pc   uintptr
}

// CodeID returns the identity of the caller skip frames above CodeID itself.
// CodeID(0) identifies the call expression calling CodeID, so two calls on
// one line differ while one call run repeatedly keeps its id.
func CodeID(skip int) ID {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return NoID
	}
	return ID{key: codeID{file: file, line: line, pc: pc}}
}

// unionID pairs a parent identity with a local discriminator.
type unionID struct {
	parent ID
	local  any
}

// Union derives a composite identity from a parent and a local key.
// Composites compare structurally, so Union(Union(a, 1), 2) never equals
// Union(a, "1/2") or Union(Union(a, 2), 1).
func Union(parent ID, local any) ID {
	return ID{key: unionID{parent: parent, local: Key(local).key}}
}

// syntheticID marks a key invented to disambiguate a duplicate.
type syntheticID struct {
	u uuid.UUID
}

// duplicateSpace namespaces synthetic duplicate keys.
var duplicateSpace = uuid.MustParse("7b0c6a52-3f4e-5d7a-9c1e-2b8f4d6a0e31")

// synthetic returns the deterministic replacement key for the n-th repeat of id.
func synthetic(id ID, n int) ID {
	name := fmt.Sprintf("%s#%d", id.GoString(), n)
	return ID{key: syntheticID{u: uuid.NewSHA1(duplicateSpace, []byte(name))}}
}

// IsNone reports whether the identity was never assigned.
func (id ID) IsNone() bool {
	return id.key == nil
}

// IsSynthetic reports whether the identity replaced a duplicate key.
func (id ID) IsSynthetic() bool {
	_, ok := id.key.(syntheticID)
	return ok
}

// Value returns the wrapped explicit key, or nil for other forms.
func (id ID) Value() any {
	switch id.key.(type) {
	case codeID, unionID, syntheticID:
		return nil
	}
	return id.key
}

// String is meant for diagnostics only.
func (id ID) String() string {
	switch k := id.key.(type) {
	case nil:
		return "<none>"
	case codeID:
		return fmt.Sprintf("%s:%d", filepath.Base(k.file), k.line)
	case unionID:
		return fmt.Sprintf("%s/%v", k.parent, printable(k.local))
	case syntheticID:
		return "dup:" + k.u.String()
	default:
		return fmt.Sprint(k)
	}
}

// GoString includes dynamic types so Key(1) and Key("1") print differently.
func (id ID) GoString() string {
	switch k := id.key.(type) {
	case nil:
		return "cells.NoID"
	case codeID:
		return fmt.Sprintf("cells.CodeID(%s:%d)", k.file, k.line)
	case unionID:
		return fmt.Sprintf("cells.Union(%#v, %#v)", k.parent, printable(k.local))
	case syntheticID:
		return fmt.Sprintf("cells.synthetic(%s)", k.u)
	default:
		return fmt.Sprintf("cells.Key(%#v)", k)
	}
}

func printable(local any) any {
	switch l := local.(type) {
	case codeID, unionID, syntheticID:
		return ID{key: l}
	}
	return local
}
