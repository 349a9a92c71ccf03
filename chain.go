package eventbus

import "log/slog"

// ChainState describes where a [Chain] is in its lifecycle.
type ChainState int32

const (
	// ChainRunning means a handler in the chain is currently executing.
	ChainRunning ChainState = iota

	// ChainSuspended means a handler returned without calling its continuation.
	// The chain resumes if that continuation is called later.
	ChainSuspended

	// ChainStopped means a handler called [Control.StopHandler], and the chain will not advance again.
	ChainStopped

	// ChainComplete means every handler has run and the completion callback was called.
	ChainComplete
)

// String returns a human-readable state name.
func (s ChainState) String() string {
	switch s {
	case ChainRunning:
		return "running"
	case ChainSuspended:
		return "suspended"
	case ChainStopped:
		return "stopped"
	case ChainComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Chain is a single dispatch along the priority path.
// It holds the handlers that were registered when the dispatch started, and a cursor to the handler that is running or awaiting its continuation.
//
// Handlers added after the chain started are not included.
// Handlers removed after the chain started are skipped if the cursor hasn't reached them yet.
//
// Each Chain has its own stop flag, so overlapping dispatches of the same event kind don't affect each other.
type Chain[T Event] struct {
	event      T
	entries    []*chainEntry[T]
	cursor     int
	state      ChainState
	stopped    bool
	looping    bool
	advanced   bool
	onComplete func()
	log        *slog.Logger
}

var (
	_ Control = (*Chain[Kind])(nil)
	_ Control = handlerControl[Kind]{}
)

func newChain[T Event](evt T, entries []*chainEntry[T], onComplete func(), log *slog.Logger) *Chain[T] {
	return &Chain[T]{
		event:      evt,
		entries:    entries,
		onComplete: onComplete,
		log:        log,
	}
}

// Event returns the event being dispatched.
func (c *Chain[T]) Event() T {
	return c.event
}

// State returns the current [ChainState].
func (c *Chain[T]) State() ChainState {
	return c.state
}

// Cursor returns the position of the handler that is running, or that the chain is waiting on.
// A stopped chain reports the handler it stopped on, and once the chain is complete this is equal to [Chain.Len].
func (c *Chain[T]) Cursor() int {
	return c.cursor
}

// Len returns the number of handlers the chain started with, including any removed since.
func (c *Chain[T]) Len() int {
	return len(c.entries)
}

// Stopped reports whether the chain has been told to stop, either by a handler or with [Chain.StopHandler].
func (c *Chain[T]) Stopped() bool {
	return c.stopped
}

// StopHandler prevents the chain from advancing again, and is checked on the next attempted advance.
// A suspended chain stays on its current handler, and resuming it does nothing.
func (c *Chain[T]) StopHandler() {
	if c.state == ChainComplete {
		return
	}
	c.stopped = true
}

// handlerControl is the [Control] given to the handler at pos.
type handlerControl[T Event] struct {
	chain *Chain[T]
	pos   int
}

// StopHandler only applies while the chain is still waiting on pos.
// Once the handler has passed the event along, the rest of the chain belongs to later handlers.
func (h handlerControl[T]) StopHandler() {
	c := h.chain
	if c.cursor != h.pos || (c.looping && c.advanced) {
		return
	}
	c.StopHandler()
}

// continuation creates the next function given to the handler at pos.
// Only the first call has any effect, and only while the chain is still waiting on pos.
func (c *Chain[T]) continuation(pos int) func() {
	return func() {
		if c.cursor != pos || c.state == ChainStopped || c.state == ChainComplete {
			return
		}
		if c.stopped {
			if !c.looping {
				c.halt()
			}
			// Otherwise run() sees the stop once the handler returns.
			return
		}
		if c.looping {
			// Called synchronously from the handler, run() will advance once it returns.
			c.advanced = true
			return
		}
		c.cursor++
		c.run()
	}
}

func (c *Chain[T]) halt() {
	c.state = ChainStopped
	c.log.Debug("Chain stopped", "event", kindOf[T]().String(), "cursor", c.cursor)
}

// run advances through the chain until a handler suspends it, it's stopped, or it completes.
// Handlers are called from this loop rather than from each other's continuation, so chain length doesn't grow the stack.
func (c *Chain[T]) run() {
	c.looping = true
	c.state = ChainRunning
	defer func() {
		c.looping = false
		if c.state == ChainRunning {
			// A handler panicked, leave the chain waiting on it.
			c.state = ChainSuspended
		}
	}()
	for {
		for c.cursor < len(c.entries) && c.entries[c.cursor].removed {
			c.cursor++
		}
		if c.cursor >= len(c.entries) {
			c.state = ChainComplete
			c.log.Debug("Chain complete", "event", kindOf[T]().String(), "handlers", len(c.entries))
			if c.onComplete != nil {
				c.onComplete()
			}
			return
		}
		c.advanced = false
		entry := c.entries[c.cursor]
		entry.handler(c.continuation(c.cursor), c.event, handlerControl[T]{chain: c, pos: c.cursor})
		if !c.advanced {
			if c.stopped {
				c.halt()
				return
			}
			c.state = ChainSuspended
			c.log.Debug("Chain suspended", "event", kindOf[T]().String(), "cursor", c.cursor, "handler", entry.id)
			return
		}
		c.cursor++
	}
}
