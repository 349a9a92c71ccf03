package eventbus

import (
	"log/slog"

	"github.com/besurechan/eventbus/structures/ranked"
)

type chainEntry[T Event] struct {
	id       HandlerID
	serial   uint64
	priority int
	handler  ChainHandler[T]
	removed  bool
}

// scheduler holds the priority handlers for one event kind.
// Handlers are kept ranked as they're added, highest priority first, ties in registration order.
type scheduler[T Event] struct {
	handlers *ranked.List[*chainEntry[T]]
	named    map[HandlerID]uint64
}

var _ registration = (*scheduler[Kind])(nil)

func newScheduler[T Event]() *scheduler[T] {
	return &scheduler[T]{
		handlers: ranked.New[*chainEntry[T]](),
		named:    map[HandlerID]uint64{},
	}
}

func (s *scheduler[T]) has(id HandlerID) bool {
	if len(id) == 0 {
		return false
	}
	_, ok := s.named[id]
	return ok
}

func (s *scheduler[T]) add(entry *chainEntry[T]) {
	s.handlers.Insert(entry, entry.priority)
	if len(entry.id) > 0 {
		s.named[entry.id] = entry.serial
	}
}

// remove tombstones the entry so any chain already holding it will skip it.
func (s *scheduler[T]) remove(serial uint64) bool {
	entry, ok := s.handlers.RemoveFunc(func(e *chainEntry[T]) bool {
		return e.serial == serial
	})
	if !ok {
		return false
	}
	entry.removed = true
	if len(entry.id) > 0 {
		delete(s.named, entry.id)
	}
	return true
}

func (s *scheduler[T]) len() int {
	return s.handlers.Len()
}

func (s *scheduler[T]) clear() {
	for _, entry := range s.handlers.All() {
		entry.removed = true
	}
	s.handlers.Clear()
	clear(s.named)
}

// schedule starts a new [Chain] over the handlers registered right now.
func (s *scheduler[T]) schedule(evt T, onComplete func(), log *slog.Logger) *Chain[T] {
	chain := newChain(evt, s.handlers.Values(), onComplete, log)
	chain.run()
	return chain
}
