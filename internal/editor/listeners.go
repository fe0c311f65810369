package editor

import "github.com/example/markup/internal/markup"

// EventType is the kind of pointer event delivered to listeners.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
)

func (e EventType) String() string {
	switch e {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

type listener struct {
	id    int
	event EventType
	fn    func(markup.Point)
}

// listeners holds every pointer handler the session has attached. Handlers
// are only added through a scope so that releasing the scope removes them.
type listeners struct {
	next int
	all  []listener
}

// scope groups listeners that share a lifetime.
type scope struct {
	reg *listeners
	ids []int
}

func (l *listeners) scope() *scope { return &scope{reg: l} }

func (s *scope) on(ev EventType, fn func(markup.Point)) {
	s.reg.next++
	id := s.reg.next
	s.reg.all = append(s.reg.all, listener{id: id, event: ev, fn: fn})
	s.ids = append(s.ids, id)
}

// release detaches every listener in the scope. It is safe to call more than
// once and on a nil scope.
func (s *scope) release() {
	if s == nil || len(s.ids) == 0 {
		return
	}
	drop := make(map[int]bool, len(s.ids))
	for _, id := range s.ids {
		drop[id] = true
	}
	kept := s.reg.all[:0]
	for _, l := range s.reg.all {
		if !drop[l.id] {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(s.reg.all); i++ {
		s.reg.all[i] = listener{}
	}
	s.reg.all = kept
	s.ids = nil
}

func (s *scope) active() bool { return s != nil && len(s.ids) > 0 }

// dispatch calls the handlers registered for ev in registration order. A
// handler detached by an earlier handler in the same dispatch is skipped.
func (l *listeners) dispatch(ev EventType, p markup.Point) {
	snapshot := make([]listener, 0, len(l.all))
	for _, h := range l.all {
		if h.event == ev {
			snapshot = append(snapshot, h)
		}
	}
	for _, h := range snapshot {
		if l.has(h.id) {
			h.fn(p)
		}
	}
}

func (l *listeners) has(id int) bool {
	for _, h := range l.all {
		if h.id == id {
			return true
		}
	}
	return false
}

func (l *listeners) len() int { return len(l.all) }
