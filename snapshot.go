package cells

import "github.com/golang/glog"

// Snapshot is a resolved, duplicate-free collection of sections.
// Section ids are unique across the snapshot, and so are cell ids.
type Snapshot struct {
	sections      []Section
	hasDuplicates bool
}

// NewSnapshot resolves duplicate identities. Every repeat of an id after the
// first gets a deterministic synthetic id and the snapshot is flagged; such
// items diff as fresh inserts.
func NewSnapshot(sections []Section) Snapshot {
	s := Snapshot{sections: make([]Section, len(sections))}

	usedSections := make(map[ID]int, len(sections))
	usedCells := make(map[ID]int)
	for i, sec := range sections {
		sec.id = s.unique(sec.id, usedSections, "section")
		cells := make([]Cell, len(sec.cells))
		for j, c := range sec.cells {
			c.id = s.unique(c.id, usedCells, "item")
			cells[j] = c
		}
		sec.cells = cells
		s.sections[i] = sec
	}
	return s
}

func (s *Snapshot) unique(id ID, used map[ID]int, what string) ID {
	n, seen := used[id]
	if !seen {
		used[id] = 0
		return id
	}
	s.hasDuplicates = true
	for {
		n++
		alt := synthetic(id, n)
		if _, taken := used[alt]; !taken {
			used[id] = n
			used[alt] = 0
			glog.Warningf("[diff]non-unique %s %s detected, using %s\n", what, id, alt)
			return alt
		}
	}
}

// Sections returns the resolved sections. The slice must not be modified.
func (s Snapshot) Sections() []Section { return s.sections }

// Len returns the number of sections.
func (s Snapshot) Len() int { return len(s.sections) }

// HasDuplicates reports whether any id had to be replaced.
func (s Snapshot) HasDuplicates() bool { return s.hasDuplicates }

// Section returns the section at i.
func (s Snapshot) Section(i int) (Section, bool) {
	if i < 0 || i >= len(s.sections) {
		return Section{}, false
	}
	return s.sections[i], true
}

// CellAt returns the cell at p.
func (s Snapshot) CellAt(p Path) (Cell, bool) {
	sec, ok := s.Section(p.Section)
	if !ok || p.Item < 0 || p.Item >= len(sec.cells) {
		return Cell{}, false
	}
	return sec.cells[p.Item], true
}

// Count returns the total number of cells.
func (s Snapshot) Count() int {
	n := 0
	for _, sec := range s.sections {
		n += len(sec.cells)
	}
	return n
}

// IDs returns the section ids in order.
func (s Snapshot) IDs() []ID {
	ids := make([]ID, len(s.sections))
	for i, sec := range s.sections {
		ids[i] = sec.id
	}
	return ids
}

// CellIDs returns the cell ids of section i in order.
func (s Snapshot) CellIDs(i int) []ID {
	sec, ok := s.Section(i)
	if !ok {
		return nil
	}
	ids := make([]ID, len(sec.cells))
	for j, c := range sec.cells {
		ids[j] = c.id
	}
	return ids
}

// All iterates every cell with its path.
func (s Snapshot) All(yield func(Path, Cell) bool) {
	for i, sec := range s.sections {
		for j, c := range sec.cells {
			if !yield(Path{Section: i, Item: j}, c) {
				return
			}
		}
	}
}
