package cells

import (
	"cmp"
	"slices"
)

// Path locates an item inside a snapshot.
type Path struct {
	Section int
	Item    int
}

func comparePaths(a, b Path) int {
	if c := cmp.Compare(a.Section, b.Section); c != 0 {
		return c
	}
	return cmp.Compare(a.Item, b.Item)
}

// Move relocates an element. From is a source index, To a target index.
type Move struct {
	From int
	To   int
}

// PathMove relocates an item. From is a source path, To a target path.
type PathMove struct {
	From Path
	To   Path
}

// KeyDiff is the edit script between two ordered unique key sequences.
//
// It has batch semantics: deletes and move sources refer to source indices,
// inserts and move destinations refer to target indices, and all of them
// apply at once.
type KeyDiff struct {
	Deletes []int  // source indices, ascending
	Inserts []int  // target indices, ascending
	Moves   []Move // ordered by target index
	Matched []Move // every key present on both sides, ordered by target index
}

// DiffKeys computes the edit script between source and target.
//
// Matched keys whose source order forms the longest increasing run (taken in
// target order) stay where they are; every other matched key moves. Keys are
// expected to be unique; a repeated key after the first is treated as new.
func DiffKeys(source, target []ID) KeyDiff {
	var d KeyDiff

	srcIndex := make(map[ID]int, len(source))
	for i, id := range source {
		if _, dup := srcIndex[id]; !dup {
			srcIndex[id] = i
		}
	}

	used := make([]bool, len(source))
	for j, id := range target {
		i, ok := srcIndex[id]
		if !ok || used[i] {
			d.Inserts = append(d.Inserts, j)
			continue
		}
		used[i] = true
		d.Matched = append(d.Matched, Move{From: i, To: j})
	}
	for i := range source {
		if !used[i] {
			d.Deletes = append(d.Deletes, i)
		}
	}

	froms := make([]int, len(d.Matched))
	for k, m := range d.Matched {
		froms[k] = m.From
	}
	keep := increasingRun(froms)
	for k, m := range d.Matched {
		if !keep[k] {
			d.Moves = append(d.Moves, m)
		}
	}
	return d
}

// increasingRun marks a longest strictly increasing subsequence of seq.
// Among equally long runs the first one to reach the maximum length wins,
// which keeps the result independent of anything but the input.
func increasingRun(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}

	tails := make([]int, 0, len(seq)) // indices into seq
	prev := make([]int, len(seq))
	best, bestLen := -1, 0
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
		if lo+1 > bestLen {
			bestLen = lo + 1
			best = i
		}
	}
	for i := best; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}

// Changeset is the two-level edit script between two snapshots, applied by a
// host as a single batch.
//
// Item operations only cover sections present on both sides; items of
// inserted or deleted sections ride along with the section operation.
type Changeset struct {
	SectionDeletes []int
	SectionInserts []int
	SectionMoves   []Move
	SectionUpdates []int // target indices of kept sections whose decorations re-render

	ItemDeletes []Path // source paths, ascending
	ItemInserts []Path // target paths, ascending
	ItemMoves   []PathMove
	ItemUpdates []Path // target paths of every kept item
}

// Diff computes the changeset that turns source into target.
//
// Cells never compare equal by content: render functions are closures, so
// every kept cell is listed as an update and must be rendered again.
func Diff(source, target Snapshot) Changeset {
	var cs Changeset

	sd := DiffKeys(source.IDs(), target.IDs())
	cs.SectionDeletes = sd.Deletes
	cs.SectionInserts = sd.Inserts
	cs.SectionMoves = sd.Moves

	for _, m := range sd.Matched {
		from, to := source.sections[m.From], target.sections[m.To]
		if hasDecorations(from) || hasDecorations(to) {
			cs.SectionUpdates = append(cs.SectionUpdates, m.To)
		}

		id := DiffKeys(source.CellIDs(m.From), target.CellIDs(m.To))
		for _, i := range id.Deletes {
			cs.ItemDeletes = append(cs.ItemDeletes, Path{Section: m.From, Item: i})
		}
		for _, j := range id.Inserts {
			cs.ItemInserts = append(cs.ItemInserts, Path{Section: m.To, Item: j})
		}
		for _, mv := range id.Moves {
			cs.ItemMoves = append(cs.ItemMoves, PathMove{
				From: Path{Section: m.From, Item: mv.From},
				To:   Path{Section: m.To, Item: mv.To},
			})
		}
		for _, mm := range id.Matched {
			cs.ItemUpdates = append(cs.ItemUpdates, Path{Section: m.To, Item: mm.To})
		}
	}

	slices.SortFunc(cs.ItemDeletes, comparePaths)
	slices.SortFunc(cs.ItemInserts, comparePaths)
	slices.SortFunc(cs.ItemUpdates, comparePaths)
	slices.SortFunc(cs.ItemMoves, func(a, b PathMove) int { return comparePaths(a.To, b.To) })
	slices.Sort(cs.SectionUpdates)
	return cs
}

func hasDecorations(s Section) bool {
	_, header := s.Header()
	_, footer := s.Footer()
	return header || footer
}

// Count returns the number of structural operations. Updates are excluded:
// every kept item is an update, so counting them would measure list length.
func (cs Changeset) Count() int {
	return len(cs.SectionDeletes) + len(cs.SectionInserts) + len(cs.SectionMoves) +
		len(cs.ItemDeletes) + len(cs.ItemInserts) + len(cs.ItemMoves)
}

// HasStructuralChanges reports whether anything was inserted, deleted or moved.
func (cs Changeset) HasStructuralChanges() bool {
	return cs.Count() > 0
}

// IsEmpty reports whether the changeset does nothing at all.
func (cs Changeset) IsEmpty() bool {
	return cs.Count() == 0 && len(cs.SectionUpdates) == 0 && len(cs.ItemUpdates) == 0
}

// Model is a bare two-level key layout a changeset can be replayed against.
type Model struct {
	Sections []ID
	Items    [][]ID
}

// ModelOf extracts the key layout of a snapshot.
func ModelOf(s Snapshot) Model {
	m := Model{Sections: s.IDs(), Items: make([][]ID, s.Len())}
	for i := range s.sections {
		m.Items[i] = s.CellIDs(i)
	}
	return m
}

// Replay applies cs to source with batch semantics, the way a batch-updating
// host does. target only supplies the keys of inserted sections and items.
func (cs Changeset) Replay(source, target Model) Model {
	n := len(target.Sections)
	out := Model{Sections: make([]ID, n), Items: make([][]ID, n)}
	origin := make([]int, n) // source index of each kept section, -1 when inserted
	placed := make([]bool, n)
	taken := make([]bool, len(source.Sections))

	for _, j := range cs.SectionInserts {
		if j < 0 || j >= n {
			continue
		}
		out.Sections[j] = target.Sections[j]
		out.Items[j] = slices.Clone(target.Items[j])
		origin[j], placed[j] = -1, true
	}
	for _, i := range cs.SectionDeletes {
		if i >= 0 && i < len(taken) {
			taken[i] = true
		}
	}
	for _, mv := range cs.SectionMoves {
		if mv.To < 0 || mv.To >= n || mv.From < 0 || mv.From >= len(taken) {
			continue
		}
		out.Sections[mv.To] = source.Sections[mv.From]
		origin[mv.To], placed[mv.To] = mv.From, true
		taken[mv.From] = true
	}
	next := 0
	for j := 0; j < n; j++ {
		if placed[j] {
			continue
		}
		for next < len(taken) && taken[next] {
			next++
		}
		if next == len(taken) {
			break
		}
		out.Sections[j] = source.Sections[next]
		origin[j], placed[j] = next, true
		taken[next] = true
	}

	for j := 0; j < n; j++ {
		i := origin[j]
		if i < 0 || !placed[j] {
			continue
		}
		out.Items[j] = cs.replayItems(i, j, source.Items[i], target.Items[j])
	}
	return out
}

func (cs Changeset) replayItems(from, to int, source, target []ID) []ID {
	n := len(target)
	out := make([]ID, n)
	placed := make([]bool, n)
	taken := make([]bool, len(source))

	for _, p := range cs.ItemInserts {
		if p.Section == to && p.Item >= 0 && p.Item < n {
			out[p.Item], placed[p.Item] = target[p.Item], true
		}
	}
	for _, p := range cs.ItemDeletes {
		if p.Section == from && p.Item >= 0 && p.Item < len(taken) {
			taken[p.Item] = true
		}
	}
	for _, mv := range cs.ItemMoves {
		if mv.From.Section != from || mv.To.Section != to {
			continue
		}
		if mv.To.Item < 0 || mv.To.Item >= n || mv.From.Item < 0 || mv.From.Item >= len(taken) {
			continue
		}
		out[mv.To.Item], placed[mv.To.Item] = source[mv.From.Item], true
		taken[mv.From.Item] = true
	}
	next := 0
	for j := 0; j < n; j++ {
		if placed[j] {
			continue
		}
		for next < len(taken) && taken[next] {
			next++
		}
		if next == len(taken) {
			break
		}
		out[j], placed[j] = source[next], true
		taken[next] = true
	}
	return out
}
