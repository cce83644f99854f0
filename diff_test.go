package cells

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func keys(vs ...string) []ID {
	ids := make([]ID, len(vs))
	for i, v := range vs {
		ids[i] = Key(v)
	}
	return ids
}

func TestDiffKeys(t *testing.T) {
	tests := []struct {
		name   string
		source []ID
		target []ID
		want   KeyDiff
	}{
		{
			name:   "identical",
			source: keys("a", "b", "c"),
			target: keys("a", "b", "c"),
			want:   KeyDiff{Matched: []Move{{0, 0}, {1, 1}, {2, 2}}},
		},
		{
			name:   "swap tail",
			source: keys("a", "b", "c"),
			target: keys("a", "c", "b"),
			want:   KeyDiff{Moves: []Move{{From: 1, To: 2}}, Matched: []Move{{0, 0}, {2, 1}, {1, 2}}},
		},
		{
			name:   "insert into empty",
			target: keys("x", "y"),
			want:   KeyDiff{Inserts: []int{0, 1}},
		},
		{
			name:   "delete all",
			source: keys("x", "y"),
			want:   KeyDiff{Deletes: []int{0, 1}},
		},
		{
			name:   "mixed",
			source: keys("a", "b", "c", "d"),
			target: keys("d", "a", "e", "c"),
			want: KeyDiff{
				Deletes: []int{1},
				Inserts: []int{2},
				Moves:   []Move{{From: 3, To: 0}},
				Matched: []Move{{3, 0}, {0, 1}, {2, 3}},
			},
		},
		{
			name:   "reverse",
			source: keys("a", "b", "c"),
			target: keys("c", "b", "a"),
			want: KeyDiff{
				Moves:   []Move{{From: 1, To: 1}, {From: 0, To: 2}},
				Matched: []Move{{2, 0}, {1, 1}, {0, 2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffKeys(tt.source, tt.target)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("DiffKeys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffReorderIsAMove(t *testing.T) {
	source := NewSnapshot([]Section{section("s", "a", "b", "c")})
	target := NewSnapshot([]Section{section("s", "a", "c", "b")})
	cs := Diff(source, target)

	want := []PathMove{{From: Path{0, 1}, To: Path{0, 2}}}
	if diff := cmp.Diff(want, cs.ItemMoves); diff != "" {
		t.Errorf("moves (-want +got):\n%s", diff)
	}
	if len(cs.ItemInserts) != 0 || len(cs.ItemDeletes) != 0 {
		t.Errorf("unexpected inserts %v or deletes %v", cs.ItemInserts, cs.ItemDeletes)
	}
	if cs.Count() != 1 {
		t.Errorf("count = %d, want 1", cs.Count())
	}
	if len(cs.ItemUpdates) != 3 {
		t.Errorf("every kept item should be an update, got %v", cs.ItemUpdates)
	}
}

func TestDiffFromEmptySection(t *testing.T) {
	source := NewSnapshot([]Section{section("s")})
	target := NewSnapshot([]Section{section("s", "x", "y")})
	cs := Diff(source, target)

	if diff := cmp.Diff([]Path{{0, 0}, {0, 1}}, cs.ItemInserts); diff != "" {
		t.Errorf("inserts (-want +got):\n%s", diff)
	}
	if len(cs.SectionInserts) != 0 || len(cs.SectionDeletes) != 0 {
		t.Error("the section itself is unchanged")
	}
}

func TestDiffSections(t *testing.T) {
	source := NewSnapshot([]Section{section("a", "1"), section("b", "2"), section("c", "3")})
	target := NewSnapshot([]Section{section("c", "3"), section("a", "1"), section("d", "4")})
	cs := Diff(source, target)

	if diff := cmp.Diff([]int{1}, cs.SectionDeletes); diff != "" {
		t.Errorf("section deletes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, cs.SectionInserts); diff != "" {
		t.Errorf("section inserts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Move{{From: 0, To: 1}}, cs.SectionMoves); diff != "" {
		t.Errorf("section moves (-want +got):\n%s", diff)
	}
	// items of inserted and deleted sections ride along with the section
	if len(cs.ItemInserts) != 0 || len(cs.ItemDeletes) != 0 {
		t.Errorf("unexpected item operations %v %v", cs.ItemInserts, cs.ItemDeletes)
	}
}

func TestDiffCrossSectionMove(t *testing.T) {
	source := NewSnapshot([]Section{section("a", "1", "2"), section("b", "3")})
	target := NewSnapshot([]Section{section("a", "1"), section("b", "2", "3")})
	cs := Diff(source, target)

	if diff := cmp.Diff([]Path{{0, 1}}, cs.ItemDeletes); diff != "" {
		t.Errorf("deletes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Path{{1, 0}}, cs.ItemInserts); diff != "" {
		t.Errorf("inserts (-want +got):\n%s", diff)
	}
}

func TestDiffDecoratedSectionsUpdate(t *testing.T) {
	source := NewSnapshot([]Section{section("a", "1").WithHeader(textCell("h", "h")), section("b")})
	target := NewSnapshot([]Section{section("a", "1").WithHeader(textCell("h", "h2")), section("b")})
	cs := Diff(source, target)
	if diff := cmp.Diff([]int{0}, cs.SectionUpdates); diff != "" {
		t.Errorf("section updates (-want +got):\n%s", diff)
	}
	if cs.HasStructuralChanges() {
		t.Error("a header change is not structural")
	}
	if cs.IsEmpty() {
		t.Error("changeset should carry updates")
	}
}

func TestDiffEmpty(t *testing.T) {
	cs := Diff(Snapshot{}, Snapshot{})
	if !cs.IsEmpty() {
		t.Errorf("expected empty changeset, got %+v", cs)
	}
}

func randomSnapshot(r *rand.Rand) Snapshot {
	sections := make([]Section, 0, 4)
	for _, s := range r.Perm(6)[:r.Intn(5)] {
		n := r.Intn(8)
		ids := make([]string, 0, n)
		for _, i := range r.Perm(12)[:n] {
			// items can hop between sections
			ids = append(ids, fmt.Sprint(i))
		}
		sections = append(sections, section(s, ids...))
	}
	return NewSnapshot(sections)
}

func TestDiffReplayReachesTarget(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := range 500 {
		source, target := randomSnapshot(r), randomSnapshot(r)
		cs := Diff(source, target)
		got := cs.Replay(ModelOf(source), ModelOf(target))
		if diff := cmp.Diff(ModelOf(target), got, equateIDs, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("case %d: replay (-want +got):\n%s", i, diff)
		}
	}
}

func TestDiffIsDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for range 100 {
		source, target := randomSnapshot(r), randomSnapshot(r)
		if diff := cmp.Diff(Diff(source, target), Diff(source, target)); diff != "" {
			t.Fatalf("diff is not deterministic:\n%s", diff)
		}
	}
}

func TestDiffCountIsBounded(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for range 200 {
		source, target := randomSnapshot(r), randomSnapshot(r)
		cs := Diff(source, target)
		bound := source.Len() + target.Len() + source.Count() + target.Count()
		if cs.Count() > bound {
			t.Fatalf("count %d over bound %d", cs.Count(), bound)
		}
	}
}

func BenchmarkDiffShuffle(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	ids := make([]string, 1000)
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}
	source := NewSnapshot([]Section{section("s", ids...)})
	r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	target := NewSnapshot([]Section{section("s", ids...)})

	b.ResetTimer()
	for b.Loop() {
		Diff(source, target)
	}
}
