package term

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
	"github.com/kungfusheep/cells"
)

// DefaultFlashFrames is how many frames inserted and moved rows stay lit.
const DefaultFlashFrames = 6

// FrameInterval is the delay between animation frames.
const FrameInterval = 50 * time.Millisecond

// FrameMsg advances list animations by one frame.
type FrameMsg struct{}

type listConfig struct {
	flashFrames int
	scrollbar   bool
	theme       Theme
	adapter     []cells.Option
}

// ListOption configures a List.
type ListOption func(*listConfig)

// WithFlashFrames sets how long animated rows stay lit. Zero turns batches
// into instant updates.
func WithFlashFrames(n int) ListOption {
	return func(c *listConfig) {
		c.flashFrames = max(0, n)
	}
}

// WithScrollbar shows a scrollbar when content overflows.
func WithScrollbar(show bool) ListOption {
	return func(c *listConfig) {
		c.scrollbar = show
	}
}

// WithTheme sets the styles the list paints flashes and the scrollbar with.
func WithTheme(t Theme) ListOption {
	return func(c *listConfig) {
		c.theme = t
	}
}

// WithAdapterOptions passes options to the list's adapter.
func WithAdapterOptions(opts ...cells.Option) ListOption {
	return func(c *listConfig) {
		c.adapter = append(c.adapter, opts...)
	}
}

type rowKind uint8

const (
	itemRow rowKind = iota
	headerRow
	footerRow
)

type row struct {
	kind rowKind
	path cells.Path
	id   cells.ID
	y, h int
}

// List is a scrolling row surface driven by a cells.Adapter.
// It only materialises views for rows inside the viewport.
type List struct {
	cfg     listConfig
	adapter *cells.Adapter

	width, height int
	offset        int // first visible line
	rows          []row
	contentHeight int

	visible     []cells.ID
	visibleSet  map[cells.ID]bool
	scrolling   bool
	flashing    map[cells.ID]int
	pending     []func()
	cursor      cells.ID
	hasCursor   bool
	highlighted cells.ID
}

// NewList creates a list for a viewport of the given size.
func NewList(width, height int, opts ...ListOption) *List {
	cfg := listConfig{flashFrames: DefaultFlashFrames, scrollbar: true, theme: ThemeDark}
	for _, opt := range opts {
		opt(&cfg)
	}
	l := &List{
		cfg:        cfg,
		width:      max(1, width),
		height:     max(1, height),
		visibleSet: make(map[cells.ID]bool),
		flashing:   make(map[cells.ID]int),
	}
	l.adapter = cells.NewAdapter(l, cfg.adapter...)
	return l
}

// Theme returns the list's theme.
func (l *List) Theme() Theme { return l.cfg.theme }

// Adapter returns the adapter driving the list.
func (l *List) Adapter() *cells.Adapter { return l.adapter }

// Apply makes sections the list's content.
func (l *List) Apply(sections []cells.Section, animated bool, done func()) {
	l.adapter.Apply(sections, animated, done)
}

// Reload makes sections the list's content with the default animation.
func (l *List) Reload(sections []cells.Section, done func()) {
	l.adapter.Reload(sections, done)
}

// PerformBatch implements cells.Host. Inserted and moved rows flash, and
// done runs once the flash has faded.
func (l *List) PerformBatch(cs cells.Changeset, done func()) {
	l.relayout()

	snap := l.adapter.Snapshot()
	lit := func(p cells.Path) {
		if c, ok := snap.CellAt(p); ok {
			l.flashing[c.ID()] = l.cfg.flashFrames
		}
	}
	for _, p := range cs.ItemInserts {
		lit(p)
	}
	for _, m := range cs.ItemMoves {
		lit(m.To)
	}
	for _, m := range cs.SectionMoves {
		for i := range l.adapter.NumberOfItems(m.To) {
			lit(cells.Path{Section: m.To, Item: i})
		}
	}
	for _, s := range cs.SectionInserts {
		for i := range l.adapter.NumberOfItems(s) {
			lit(cells.Path{Section: s, Item: i})
		}
	}
	l.sync()

	if l.cfg.flashFrames == 0 || len(l.flashing) == 0 {
		clear(l.flashing)
		done()
		return
	}
	l.pending = append(l.pending, done)
}

// ReloadData implements cells.Host. Running flashes are cut short.
func (l *List) ReloadData(done func()) {
	clear(l.flashing)
	l.finish()
	l.relayout()
	l.sync()
	done()
}

// IsScrolling implements cells.Host.
func (l *List) IsScrolling() bool { return l.scrolling }

// ScrollBy moves the viewport by delta lines. The list counts as scrolling
// until Settle.
func (l *List) ScrollBy(delta int) {
	l.scrolling = true
	l.scrollTo(l.offset + delta)
}

// Settle marks the end of a scroll gesture.
func (l *List) Settle() { l.scrolling = false }

// Offset returns the first visible line.
func (l *List) Offset() int { return l.offset }

func (l *List) scrollTo(offset int) {
	offset = max(0, min(offset, l.contentHeight-l.height))
	if offset != l.offset {
		l.offset = offset
		l.sync()
	}
}

// Resize changes the viewport.
func (l *List) Resize(width, height int) {
	l.width, l.height = max(1, width), max(1, height)
	l.offset = max(0, min(l.offset, l.contentHeight-l.height))
	l.sync()
}

// Animating reports whether rows are still lit.
func (l *List) Animating() bool { return len(l.flashing) > 0 }

// Tick advances the animation by one frame and reports whether more frames
// are needed. Completions of finished batches run here.
func (l *List) Tick() bool {
	for id, n := range l.flashing {
		if n <= 1 {
			delete(l.flashing, id)
		} else {
			l.flashing[id] = n - 1
		}
	}
	if len(l.flashing) == 0 {
		l.finish()
	}
	return l.Animating()
}

// Animate returns the command that delivers the next frame, or nil when
// nothing is animating.
func (l *List) Animate() tea.Cmd {
	if !l.Animating() {
		return nil
	}
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg { return FrameMsg{} })
}

func (l *List) finish() {
	pending := l.pending
	l.pending = nil
	for _, done := range pending {
		done()
	}
}

// relayout rebuilds row geometry from the adapter's snapshot.
func (l *List) relayout() {
	l.rows = l.rows[:0]
	y := 0
	add := func(kind rowKind, p cells.Path, id cells.ID, h float64, ok bool) {
		lines := 1
		if ok {
			lines = max(1, int(math.Round(h)))
		}
		l.rows = append(l.rows, row{kind: kind, path: p, id: id, y: y, h: lines})
		y += lines
	}

	a := l.adapter
	for s := range a.NumberOfSections() {
		if id, ok := a.HeaderID(s); ok {
			c, _ := a.HeaderCell(s)
			h, set := cells.Lookup(c.Values(), cells.Height)
			add(headerRow, cells.Path{Section: s, Item: -1}, id, h, set)
		}
		for i := range a.NumberOfItems(s) {
			p := cells.Path{Section: s, Item: i}
			c, _ := a.CellAt(p)
			h, set := a.Height(p)
			add(itemRow, p, c.ID(), h, set)
		}
		if id, ok := a.FooterID(s); ok {
			c, _ := a.FooterCell(s)
			h, set := cells.Lookup(c.Values(), cells.Height)
			add(footerRow, cells.Path{Section: s, Item: -1}, id, h, set)
		}
	}
	l.contentHeight = y
	l.offset = max(0, min(l.offset, l.contentHeight-l.height))
	if l.hasCursor {
		if _, ok := a.PathOf(l.cursor); !ok {
			l.hasCursor = false
		}
	}
}

// viewport returns the rows intersecting the visible lines.
func (l *List) viewport() []row {
	var out []row
	for _, r := range l.rows {
		if r.y+r.h <= l.offset {
			continue
		}
		if r.y >= l.offset+l.height {
			break
		}
		out = append(out, r)
	}
	return out
}

// sync materialises rows that entered the viewport and hands rows that left
// back to the adapter.
func (l *List) sync() {
	a := l.adapter
	rows := l.viewport()
	next := make([]cells.ID, 0, len(rows))
	nextSet := make(map[cells.ID]bool, len(rows))
	for _, r := range rows {
		next = append(next, r.id)
		nextSet[r.id] = true
	}
	// rows that left go back to the pool first so entering rows can take
	// their views
	for _, id := range l.visible {
		if !nextSet[id] {
			a.EndDisplayingID(id)
		}
	}
	for _, r := range rows {
		if _, live := a.View(r.id); live {
			continue
		}
		switch r.kind {
		case headerRow:
			a.Header(r.path.Section)
		case footerRow:
			a.Footer(r.path.Section)
		default:
			a.Dequeue(r.path)
			if !l.visibleSet[r.id] {
				a.WillDisplay(r.path)
			}
		}
	}
	l.visible, l.visibleSet = next, nextSet
	glog.V(2).Infof("[adapter]list shows %d rows from line %d\n", len(next), l.offset)
}

// VisibleIDs returns the ids of rows in the viewport, top to bottom.
func (l *List) VisibleIDs() []cells.ID { return l.visible }

// MoveCursor moves the highlighted item by delta items and scrolls it into
// view.
func (l *List) MoveCursor(delta int) {
	items := make([]row, 0, len(l.rows))
	current := -1
	for _, r := range l.rows {
		if r.kind != itemRow {
			continue
		}
		if l.hasCursor && r.id == l.cursor {
			current = len(items)
		}
		items = append(items, r)
	}
	if len(items) == 0 {
		return
	}
	i := max(0, min(len(items)-1, current+delta))
	if current < 0 {
		i = 0
	}
	target := items[i]
	l.cursor, l.hasCursor = target.id, true

	switch {
	case target.y < l.offset:
		l.scrollTo(target.y)
	case target.y+target.h > l.offset+l.height:
		l.scrollTo(target.y + target.h - l.height)
	}
	l.highlight()
}

// highlight moves the highlight to the cursor row.
func (l *List) highlight() {
	a := l.adapter
	if p, ok := a.PathOf(l.highlighted); ok && l.highlighted != l.cursor {
		a.SetHighlighted(p, false)
	}
	if p, ok := a.PathOf(l.cursor); ok {
		a.SetHighlighted(p, true)
		l.highlighted = l.cursor
	}
}

// Cursor returns the id of the highlighted item.
func (l *List) Cursor() (cells.ID, bool) { return l.cursor, l.hasCursor }

// Activate selects the highlighted item.
func (l *List) Activate() {
	if !l.hasCursor {
		return
	}
	if p, ok := l.adapter.PathOf(l.cursor); ok {
		l.adapter.Select(p)
	}
}

// Canvas draws the visible rows.
func (l *List) Canvas() *Canvas {
	c := NewCanvas(l.width, l.height)
	width := l.width
	overflow := l.cfg.scrollbar && l.contentHeight > l.height
	if overflow {
		width--
	}
	for _, r := range l.viewport() {
		view, ok := l.adapter.View(r.id)
		if !ok {
			continue
		}
		y := r.y - l.offset
		drawView(c, view, 0, y, width, r.h)
		if _, lit := l.flashing[r.id]; lit {
			c.Restyle(0, y, width, r.h, l.cfg.theme.flash)
		}
	}
	if overflow {
		l.drawScrollbar(c)
	}
	return c
}

// Render returns the styled viewport.
func (l *List) Render() string { return l.Canvas().Render() }

// String returns the plain viewport.
func (l *List) String() string { return l.Canvas().String() }

// drawScrollbar draws a simple scrollbar indicator.
func (l *List) drawScrollbar(c *Canvas) {
	x := l.width - 1
	thumb := max(1, l.height*l.height/l.contentHeight)
	pos := 0
	if maxScroll := l.contentHeight - l.height; maxScroll > 0 {
		pos = (l.height - thumb) * l.offset / maxScroll
	}
	for i := range l.height {
		c.Set(x, i, Glyph{Rune: '│', Style: l.cfg.theme.Track})
	}
	for i := range thumb {
		c.Set(x, pos+i, Glyph{Rune: '┃', Style: l.cfg.theme.Thumb})
	}
}
