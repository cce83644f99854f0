package cells

import "github.com/golang/glog"

// SlotState is the lifecycle stage of a pooled view.
type SlotState uint8

const (
	SlotEmpty        SlotState = iota // view exists, never bound
	SlotBound                         // bound to a descriptor, render pending
	SlotRendered                      // on screen with its descriptor applied
	SlotReusePending                  // off screen, waiting to be rebound
	SlotReleased                      // dropped for good
)

func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "empty"
	case SlotBound:
		return "bound"
	case SlotRendered:
		return "rendered"
	case SlotReusePending:
		return "reuse-pending"
	case SlotReleased:
		return "released"
	}
	return "unknown"
}

// Stats counts view lifecycle events.
type Stats struct {
	Created  int // views built with create
	Reused   int // pooled views rebound to another id
	Released int // views dropped
	Renders  int // render calls
}

// slot pairs one view with the id it currently represents.
type slot struct {
	id    ID
	kind  Kind
	view  View
	cell  Cell
	state SlotState
}

// reusePool owns every view the adapter created. A slot stays associated
// with its id until another id takes it over or it is released, so a row
// that scrolls back in gets its own view again.
type reusePool struct {
	slots map[ID]*slot
	idle  map[Kind][]*slot // reuse-pending, oldest first
	limit int
	stats *Stats
}

func newReusePool(limit int, stats *Stats) *reusePool {
	return &reusePool{
		slots: make(map[ID]*slot),
		idle:  make(map[Kind][]*slot),
		limit: limit,
		stats: stats,
	}
}

// dequeue materialises a view for id and renders c into it.
func (p *reusePool) dequeue(id ID, c Cell) *slot {
	if s, ok := p.slots[id]; ok {
		if s.kind == c.Kind() {
			if s.state == SlotReusePending {
				p.removeIdle(s)
				s.prepare()
			}
			p.bind(s, c)
			return s
		}
		glog.V(1).Infof("[adapter]kind of %s changed from %s to %s, creating a fresh view\n", id, s.kind, c.Kind())
		p.release(s)
	}

	if s := p.takeIdle(c.Kind()); s != nil {
		delete(p.slots, s.id)
		s.prepare()
		s.id = id
		p.slots[id] = s
		p.stats.Reused++
		p.bind(s, c)
		return s
	}

	s := &slot{id: id, kind: c.Kind(), view: c.CreateView(), state: SlotEmpty}
	p.slots[id] = s
	p.stats.Created++
	p.bind(s, c)
	return s
}

// prepare runs the previous occupant's reuse hooks before a rebind.
func (s *slot) prepare() {
	if fn, ok := Lookup(s.cell.Values(), WillReuse); ok {
		fn(s.view)
	}
	if r, ok := s.view.(Reusable); ok {
		r.PrepareForReuse()
	}
}

func (p *reusePool) bind(s *slot, c Cell) {
	s.cell = c
	s.state = SlotBound
	p.render(s)
}

func (p *reusePool) render(s *slot) {
	s.cell.Render(s.view)
	s.state = SlotRendered
	p.stats.Renders++
}

// recycle moves a rendered view off screen.
func (p *reusePool) recycle(id ID) {
	s, ok := p.slots[id]
	if !ok || s.state != SlotRendered {
		return
	}
	s.state = SlotReusePending
	p.idle[s.kind] = append(p.idle[s.kind], s)
	for len(p.idle[s.kind]) > p.limit {
		p.release(p.idle[s.kind][0])
	}
}

func (p *reusePool) takeIdle(kind Kind) *slot {
	idle := p.idle[kind]
	if len(idle) == 0 {
		return nil
	}
	s := idle[len(idle)-1]
	p.idle[kind] = idle[:len(idle)-1]
	return s
}

func (p *reusePool) removeIdle(s *slot) {
	idle := p.idle[s.kind]
	for i, o := range idle {
		if o == s {
			p.idle[s.kind] = append(idle[:i], idle[i+1:]...)
			return
		}
	}
}

func (p *reusePool) release(s *slot) {
	if s.state == SlotReusePending {
		p.removeIdle(s)
	}
	if p.slots[s.id] == s {
		delete(p.slots, s.id)
	}
	s.state = SlotReleased
	destroy(s.view)
	p.stats.Released++
}

// retain releases every slot whose id fails keep.
func (p *reusePool) retain(keep func(ID) bool) {
	var gone []*slot
	for id, s := range p.slots {
		if !keep(id) {
			gone = append(gone, s)
		}
	}
	for _, s := range gone {
		glog.V(2).Infof("[adapter]releasing view for %s\n", s.id)
		p.release(s)
	}
}

// rebind swaps the descriptor of a slot for id. Live views render again;
// off-screen views only pick up the new callbacks.
func (p *reusePool) rebind(id ID, c Cell) {
	s, ok := p.slots[id]
	if !ok {
		return
	}
	if s.kind != c.Kind() {
		p.release(s)
		return
	}
	s.cell = c
	if s.state == SlotRendered {
		s.state = SlotBound
		p.render(s)
	}
}

// live returns the view on screen for id.
func (p *reusePool) live(id ID) (*slot, bool) {
	s, ok := p.slots[id]
	if !ok || s.state != SlotRendered {
		return nil, false
	}
	return s, true
}

func (p *reusePool) state(id ID) (SlotState, bool) {
	s, ok := p.slots[id]
	if !ok {
		return SlotReleased, false
	}
	return s.state, true
}

// Len returns the number of views the pool holds.
func (p *reusePool) Len() int { return len(p.slots) }
