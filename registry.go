package eventbus

import "slices"

// registration is the type-erased view of a per-kind entry, so both paths can be stored in one map each.
type registration interface {
	has(id HandlerID) bool
	remove(serial uint64) bool
	len() int
	clear()
}

type handlerEntry[T Event] struct {
	id      HandlerID
	serial  uint64
	handler Handler[T]
	removed bool
}

// handlerSet holds the fan-out handlers for one event kind in registration order.
type handlerSet[T Event] struct {
	entries []*handlerEntry[T]
	named   map[HandlerID]uint64
}

var _ registration = (*handlerSet[Kind])(nil)

func newHandlerSet[T Event]() *handlerSet[T] {
	return &handlerSet[T]{
		named: map[HandlerID]uint64{},
	}
}

func (s *handlerSet[T]) has(id HandlerID) bool {
	if len(id) == 0 {
		return false
	}
	_, ok := s.named[id]
	return ok
}

func (s *handlerSet[T]) add(entry *handlerEntry[T]) {
	s.entries = append(s.entries, entry)
	if len(entry.id) > 0 {
		s.named[entry.id] = entry.serial
	}
}

func (s *handlerSet[T]) remove(serial uint64) bool {
	i := slices.IndexFunc(s.entries, func(e *handlerEntry[T]) bool {
		return e.serial == serial
	})
	if i < 0 {
		return false
	}
	entry := s.entries[i]
	entry.removed = true
	if len(entry.id) > 0 {
		delete(s.named, entry.id)
	}
	// A new slice is built so snapshots taken by an in-progress dispatch are left untouched.
	s.entries = slices.Concat(s.entries[:i], s.entries[i+1:])
	return true
}

func (s *handlerSet[T]) len() int {
	return len(s.entries)
}

func (s *handlerSet[T]) clear() {
	for _, entry := range s.entries {
		entry.removed = true
	}
	s.entries = nil
	clear(s.named)
}

// dispatch calls every handler registered when dispatch started.
// Handlers removed while dispatching are skipped if they haven't been called yet.
func (s *handlerSet[T]) dispatch(evt T) {
	snapshot := s.entries
	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		entry.handler(evt)
	}
}
