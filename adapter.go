package cells

import (
	"sync"

	"github.com/golang/glog"
)

// Host is the retained list surface an Adapter drives.
type Host interface {
	// PerformBatch applies cs as one animated, all-or-nothing update and
	// calls done when the animation has finished.
	PerformBatch(cs Changeset, done func())

	// ReloadData rebuilds the whole surface without animation.
	ReloadData(done func())

	// IsScrolling reports whether the user is dragging or the surface is
	// still moving. Animated batches are never started while it is.
	IsScrolling() bool
}

// DefaultMaxAnimatedChanges is the largest changeset animated by default.
const DefaultMaxAnimatedChanges = 300

// DefaultPoolLimit is the number of idle views kept per kind by default.
const DefaultPoolLimit = 16

type config struct {
	animated           bool
	maxAnimatedChanges int
	poolLimit          int
}

// Option configures an Adapter.
type Option func(*config)

// WithAnimated sets whether Reload animates. Defaults to true.
func WithAnimated(animated bool) Option {
	return func(c *config) {
		c.animated = animated
	}
}

// WithMaxAnimatedChanges sets the largest changeset that is still animated;
// anything bigger is applied as a full reload.
func WithMaxAnimatedChanges(n int) Option {
	return func(c *config) {
		c.maxAnimatedChanges = max(0, n)
	}
}

// WithPoolLimit sets how many off-screen views are kept per kind.
func WithPoolLimit(n int) Option {
	return func(c *config) {
		c.poolLimit = max(0, n)
	}
}

func newConfig(opts []Option) config {
	c := config{
		animated:           true,
		maxAnimatedChanges: DefaultMaxAnimatedChanges,
		poolLimit:          DefaultPoolLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// decoration keys, folded into the section id
type decoration uint8

const (
	headerSlot decoration = iota
	footerSlot
)

// Adapter owns the applied snapshot and every view created for it, and
// replays snapshot changes against a Host.
//
// An Adapter is not safe for concurrent use. All calls, including the
// completions it passes to the host, are expected on one goroutine.
type Adapter struct {
	host     Host
	cfg      config
	snapshot Snapshot
	applied  bool

	index      map[ID]Path
	indexValid bool

	pool  *reusePool
	stats Stats
}

// NewAdapter creates an adapter driving host.
func NewAdapter(host Host, opts ...Option) *Adapter {
	a := &Adapter{
		host: host,
		cfg:  newConfig(opts),
	}
	a.pool = newReusePool(a.cfg.poolLimit, &a.stats)
	return a
}

// Reload applies sections with the adapter's default animation setting.
func (a *Adapter) Reload(sections []Section, done func()) {
	a.Apply(sections, a.cfg.animated, done)
}

// Apply makes sections the current content.
//
// The snapshot is replaced before the host is touched, so a second Apply
// issued before done fires diffs against this one. Live views of kept ids
// render again; views of ids that left are released. done is called exactly
// once, by the host, on both the animated and the reload path.
func (a *Adapter) Apply(sections []Section, animated bool, done func()) {
	complete := once(done)

	target := NewSnapshot(sections)
	source := a.snapshot
	first := !a.applied
	a.snapshot, a.applied = target, true
	a.indexValid = false

	cs := Diff(source, target)
	a.pool.retain(a.contains)
	a.rerender()

	if reason := a.blocker(animated, first, target, cs); reason != "" {
		glog.V(2).Infof("[adapter]reloading %d sections: %s\n", target.Len(), reason)
		if a.host == nil {
			complete()
			return
		}
		a.host.ReloadData(complete)
		return
	}
	glog.V(2).Infof("[adapter]animating %d changes\n", cs.Count())
	a.host.PerformBatch(cs, complete)
}

// blocker returns why an apply cannot animate, or "" when it can.
func (a *Adapter) blocker(animated, first bool, target Snapshot, cs Changeset) string {
	switch {
	case a.host == nil:
		return "no host"
	case !animated:
		return "not animated"
	case !a.cfg.animated:
		return "animations disabled"
	case first:
		return "first apply"
	case target.HasDuplicates():
		return "duplicate ids"
	case cs.Count() > a.cfg.maxAnimatedChanges:
		glog.V(1).Infof("[adapter]%d changes over the limit of %d\n", cs.Count(), a.cfg.maxAnimatedChanges)
		return "too many changes"
	case a.host.IsScrolling():
		return "scrolling"
	}
	return ""
}

// once guards a completion so it runs at most one time.
func once(done func()) func() {
	var o sync.Once
	return func() {
		if done != nil {
			o.Do(done)
		}
	}
}

func (a *Adapter) contains(id ID) bool {
	if _, ok := a.PathOf(id); ok {
		return true
	}
	if u, ok := id.key.(unionID); ok {
		if d, ok := u.local.(decoration); ok {
			i, ok := a.sectionIndex(u.parent)
			if !ok {
				return false
			}
			_, has := a.decoration(i, d)
			return has
		}
	}
	return false
}

// rerender hands the new descriptors to existing views, in snapshot order.
func (a *Adapter) rerender() {
	for i, sec := range a.snapshot.sections {
		for _, d := range []decoration{headerSlot, footerSlot} {
			if c, ok := a.decoration(i, d); ok {
				a.pool.rebind(Union(sec.id, d), c)
			}
		}
		for _, c := range sec.cells {
			a.pool.rebind(c.id, c)
		}
	}
}

func (a *Adapter) decoration(section int, d decoration) (Cell, bool) {
	sec, ok := a.snapshot.Section(section)
	if !ok {
		return Cell{}, false
	}
	if d == headerSlot {
		return sec.Header()
	}
	return sec.Footer()
}

func (a *Adapter) sectionIndex(id ID) (int, bool) {
	for i, sec := range a.snapshot.sections {
		if sec.id == id {
			return i, true
		}
	}
	return 0, false
}

func (a *Adapter) buildIndex() {
	if a.indexValid {
		return
	}
	a.index = make(map[ID]Path, a.snapshot.Count())
	for p, c := range a.snapshot.All {
		a.index[c.id] = p
	}
	a.indexValid = true
}

// Dequeue materialises the view for the item at p: the id's own view when it
// has one of the right kind, else an idle view of the same kind, else a new
// one. The cell is rendered into it every time.
func (a *Adapter) Dequeue(p Path) (View, bool) {
	c, ok := a.snapshot.CellAt(p)
	if !ok {
		return nil, false
	}
	return a.pool.dequeue(c.id, c).view, true
}

// Header materialises the header view of a section.
func (a *Adapter) Header(section int) (View, bool) {
	return a.dequeueDecoration(section, headerSlot)
}

// Footer materialises the footer view of a section.
func (a *Adapter) Footer(section int) (View, bool) {
	return a.dequeueDecoration(section, footerSlot)
}

func (a *Adapter) dequeueDecoration(section int, d decoration) (View, bool) {
	c, ok := a.decoration(section, d)
	if !ok {
		return nil, false
	}
	return a.pool.dequeue(Union(a.snapshot.sections[section].id, d), c).view, true
}

// HeaderID returns the identity a section header's view is held under.
func (a *Adapter) HeaderID(section int) (ID, bool) {
	return a.decorationID(section, headerSlot)
}

// FooterID returns the identity a section footer's view is held under.
func (a *Adapter) FooterID(section int) (ID, bool) {
	return a.decorationID(section, footerSlot)
}

func (a *Adapter) decorationID(section int, d decoration) (ID, bool) {
	if _, ok := a.decoration(section, d); !ok {
		return NoID, false
	}
	return Union(a.snapshot.sections[section].id, d), true
}

// HeaderCell returns the header descriptor of a section.
func (a *Adapter) HeaderCell(section int) (Cell, bool) {
	return a.decoration(section, headerSlot)
}

// FooterCell returns the footer descriptor of a section.
func (a *Adapter) FooterCell(section int) (Cell, bool) {
	return a.decoration(section, footerSlot)
}

// WillDisplay runs the display hook of the item at p.
func (a *Adapter) WillDisplay(p Path) {
	if c, ok := a.snapshot.CellAt(p); ok {
		Get(c.values, WillDisplay)()
	}
}

// EndDisplaying returns the item at p to the reuse pool.
func (a *Adapter) EndDisplaying(p Path) {
	if c, ok := a.snapshot.CellAt(p); ok {
		a.EndDisplayingID(c.id)
	}
}

// EndDisplayingID returns the view for id to the reuse pool. Hosts that
// track rows by id use it after a reorder, when paths are already stale.
func (a *Adapter) EndDisplayingID(id ID) {
	s, ok := a.pool.live(id)
	if !ok {
		return
	}
	Get(s.cell.values, DidEndDisplaying)()
	a.pool.recycle(id)
}

// EndDisplayingHeader returns a section header to the reuse pool.
func (a *Adapter) EndDisplayingHeader(section int) {
	if sec, ok := a.snapshot.Section(section); ok {
		a.pool.recycle(Union(sec.id, headerSlot))
	}
}

// EndDisplayingFooter returns a section footer to the reuse pool.
func (a *Adapter) EndDisplayingFooter(section int) {
	if sec, ok := a.snapshot.Section(section); ok {
		a.pool.recycle(Union(sec.id, footerSlot))
	}
}

// Select runs the selection action of the item at p.
func (a *Adapter) Select(p Path) {
	if c, ok := a.snapshot.CellAt(p); ok {
		Get(c.values, DidSelect)()
	}
}

// SetHighlighted tells the live view at p about a highlight change. The
// callback comes from the descriptor the view is bound to now.
func (a *Adapter) SetHighlighted(p Path, on bool) {
	c, ok := a.snapshot.CellAt(p)
	if !ok {
		return
	}
	if s, ok := a.pool.live(c.id); ok {
		Get(s.cell.values, DidHighlight)(s.view, on)
	}
}

// Height returns the row height of the item at p.
func (a *Adapter) Height(p Path) (float64, bool) {
	c, ok := a.snapshot.CellAt(p)
	if !ok {
		return 0, false
	}
	return Lookup(c.values, Height)
}

// ItemSize returns the item size of the item at p for a surface of bounds.
func (a *Adapter) ItemSize(p Path, bounds Size) (Size, bool) {
	c, ok := a.snapshot.CellAt(p)
	if !ok {
		return Size{}, false
	}
	fn, ok := Lookup(c.values, SizeFunc)
	if !ok || fn == nil {
		return Size{}, false
	}
	return fn(bounds)
}

// View returns the on-screen view for id. Off-screen and unknown ids are
// not found.
func (a *Adapter) View(id ID) (View, bool) {
	s, ok := a.pool.live(id)
	if !ok {
		return nil, false
	}
	return s.view, true
}

// Cell returns the current descriptor for id.
func (a *Adapter) Cell(id ID) (Cell, bool) {
	p, ok := a.PathOf(id)
	if !ok {
		return Cell{}, false
	}
	return a.snapshot.CellAt(p)
}

// CellAt returns the current descriptor at p.
func (a *Adapter) CellAt(p Path) (Cell, bool) {
	return a.snapshot.CellAt(p)
}

// PathOf returns where id sits in the current snapshot.
func (a *Adapter) PathOf(id ID) (Path, bool) {
	a.buildIndex()
	p, ok := a.index[id]
	return p, ok
}

// Section returns the current section at i.
func (a *Adapter) Section(i int) (Section, bool) {
	return a.snapshot.Section(i)
}

// NumberOfSections returns the number of current sections.
func (a *Adapter) NumberOfSections() int {
	return a.snapshot.Len()
}

// NumberOfItems returns the number of items in section i.
func (a *Adapter) NumberOfItems(i int) int {
	sec, ok := a.snapshot.Section(i)
	if !ok {
		return 0
	}
	return sec.Len()
}

// Snapshot returns the current snapshot.
func (a *Adapter) Snapshot() Snapshot {
	return a.snapshot
}

// SlotState reports the lifecycle stage of the view held for id.
func (a *Adapter) SlotState(id ID) (SlotState, bool) {
	return a.pool.state(id)
}

// Stats returns view lifecycle counters.
func (a *Adapter) Stats() Stats {
	return a.stats
}
