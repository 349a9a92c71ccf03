package eventbus

import (
	"log/slog"
	"reflect"
	"sync"
)

// Bus routes events to the handlers subscribed to their kind.
// There are two independent paths:
//   - The fan-out path, with [Subscribe] and [Dispatch], calls every handler in registration order.
//   - The priority path, with [SubscribeChain] and [DispatchChain], calls handlers one at a time in a [Chain], highest priority first.
//
// A Bus is meant to be owned by a single goroutine, like a game loop, and does no locking.
// Using one Bus from multiple goroutines requires external synchronization.
type Bus struct {
	handlers   map[reflect.Type]registration
	schedulers map[reflect.Type]registration
	serial     uint64
	log        *slog.Logger
}

type busConf struct {
	log *slog.Logger
}

// Option configures a [Bus] created with [New].
type Option func(conf *busConf)

// WithLogger sets a logger that will receive debug records about subscriptions and chain progress.
// By default, nothing is logged.
func WithLogger(log *slog.Logger) Option {
	return func(conf *busConf) {
		if log != nil {
			conf.log = log
		}
	}
}

// New creates an empty [Bus].
func New(opts ...Option) *Bus {
	conf := busConf{
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&conf)
	}
	return &Bus{
		handlers:   map[reflect.Type]registration{},
		schedulers: map[reflect.Type]registration{},
		log:        conf.log,
	}
}

var (
	instanceBus *Bus
	initOnce    sync.Once
)

// Instance is useful in cases where a single, global [Bus] is desired.
// Passing a [Bus] created with [New] to the components that need it is usually clearer.
func Instance() *Bus {
	initOnce.Do(func() {
		instanceBus = New()
	})
	return instanceBus
}

func (b *Bus) nextSerial() uint64 {
	b.serial++
	return b.serial
}

// Subscribe adds an anonymous handler to the fan-out path for events of kind T.
// A nil *Listener is returned only if handler is nil.
func Subscribe[T Event](b *Bus, handler Handler[T]) *Listener {
	return SubscribeID(b, "", handler)
}

// SubscribeID adds a named handler to the fan-out path for events of kind T.
// If a handler with the same id is already subscribed to T, then nothing changes and a nil *Listener is returned.
func SubscribeID[T Event](b *Bus, id HandlerID, handler Handler[T]) *Listener {
	if b == nil || handler == nil {
		return nil
	}
	kind := kindOf[T]()
	set, ok := b.handlers[kind].(*handlerSet[T])
	if !ok {
		set = newHandlerSet[T]()
	}
	if set.has(id) {
		b.log.Debug("Duplicate subscription ignored", "event", kind.String(), "id", id)
		return nil
	}
	entry := &handlerEntry[T]{id: id, serial: b.nextSerial(), handler: handler}
	set.add(entry)
	b.handlers[kind] = set
	l := &Listener{bus: b, kind: kind, id: id, serial: entry.serial}
	b.log.Debug("Subscribed", "listener", l.String())
	return l
}

// SubscribeChain adds an anonymous handler to the priority path for events of kind T.
// Handlers with a higher priority run first, and handlers with equal priority run in the order they were subscribed.
// A nil *Listener is returned only if handler is nil.
func SubscribeChain[T Event](b *Bus, handler ChainHandler[T], priority int) *Listener {
	return SubscribeChainID(b, "", handler, priority)
}

// SubscribeChainID adds a named handler to the priority path for events of kind T.
// If a handler with the same id is already subscribed to T, then nothing changes and a nil *Listener is returned.
func SubscribeChainID[T Event](b *Bus, id HandlerID, handler ChainHandler[T], priority int) *Listener {
	if b == nil || handler == nil {
		return nil
	}
	kind := kindOf[T]()
	sched, ok := b.schedulers[kind].(*scheduler[T])
	if !ok {
		sched = newScheduler[T]()
	}
	if sched.has(id) {
		b.log.Debug("Duplicate chain subscription ignored", "event", kind.String(), "id", id)
		return nil
	}
	entry := &chainEntry[T]{id: id, serial: b.nextSerial(), priority: priority, handler: handler}
	sched.add(entry)
	b.schedulers[kind] = sched
	l := &Listener{bus: b, kind: kind, id: id, serial: entry.serial, chained: true}
	b.log.Debug("Subscribed", "listener", l.String(), "priority", priority)
	return l
}

// Unsubscribe removes the subscription identified by l.
// This does nothing if l is nil, was created by a different [Bus], or has already been unsubscribed.
// Removing the last handler for an event kind removes the kind's entry entirely.
func (b *Bus) Unsubscribe(l *Listener) {
	if b == nil || l == nil || l.bus != b {
		return
	}
	regs := b.handlers
	if l.chained {
		regs = b.schedulers
	}
	reg, ok := regs[l.kind]
	if !ok {
		return
	}
	if !reg.remove(l.serial) {
		return
	}
	if reg.len() == 0 {
		delete(regs, l.kind)
	}
	b.log.Debug("Unsubscribed", "listener", l.String())
}

// Dispatch calls every fan-out handler subscribed to kind T, synchronously and in registration order.
// Nothing happens if there are no handlers.
// Events are routed by T, so dispatching a concrete event as an interface type won't reach handlers subscribed to the concrete kind.
//
// Handlers may subscribe and unsubscribe while being dispatched to.
// Handlers subscribed during a dispatch are first called on the next dispatch, and handlers unsubscribed during a dispatch are not called if they haven't been already.
func Dispatch[T Event](b *Bus, evt T) {
	if b == nil {
		return
	}
	set, ok := b.handlers[kindOf[T]()].(*handlerSet[T])
	if !ok {
		return
	}
	set.dispatch(evt)
}

// DispatchChain starts a [Chain] through the priority handlers subscribed to kind T, and returns it for inspection.
// The onComplete function is called once every handler has passed the event along, and may be nil.
// If there are no handlers, then onComplete is called immediately.
// Like [Dispatch], events are routed by T, so dispatch with the concrete kind.
//
// The returned [Chain] may still be suspended, waiting on a handler to call its continuation.
func DispatchChain[T Event](b *Bus, evt T, onComplete func()) *Chain[T] {
	if b == nil {
		chain := newChain[T](evt, nil, onComplete, slog.New(slog.DiscardHandler))
		chain.run()
		return chain
	}
	if sched, ok := b.schedulers[kindOf[T]()].(*scheduler[T]); ok {
		return sched.schedule(evt, onComplete, b.log)
	}
	chain := newChain[T](evt, nil, onComplete, b.log)
	chain.run()
	return chain
}

// HandlerCount returns the number of fan-out handlers subscribed to kind T.
func HandlerCount[T Event](b *Bus) int {
	if b == nil {
		return 0
	}
	reg, ok := b.handlers[kindOf[T]()]
	if !ok {
		return 0
	}
	return reg.len()
}

// ChainHandlerCount returns the number of priority handlers subscribed to kind T.
func ChainHandlerCount[T Event](b *Bus) int {
	if b == nil {
		return 0
	}
	reg, ok := b.schedulers[kindOf[T]()]
	if !ok {
		return 0
	}
	return reg.len()
}

// InvalidateChain removes every priority handler subscribed to kind T.
// Chains already in progress will not call any handler they haven't reached yet.
func InvalidateChain[T Event](b *Bus) {
	if b == nil {
		return
	}
	kind := kindOf[T]()
	reg, ok := b.schedulers[kind]
	if !ok {
		return
	}
	reg.clear()
	delete(b.schedulers, kind)
	b.log.Debug("Chain invalidated", "event", kind.String())
}

// Clear removes every subscription from the [Bus], on both paths.
// All outstanding [Listener] values become inert.
func (b *Bus) Clear() {
	if b == nil {
		return
	}
	for _, reg := range b.handlers {
		reg.clear()
	}
	for _, reg := range b.schedulers {
		reg.clear()
	}
	clear(b.handlers)
	clear(b.schedulers)
	b.log.Debug("Cleared")
}
