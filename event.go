package eventbus

import "reflect"

// Event is implemented by every event kind that may be dispatched through a [Bus].
// Each kind should be a distinct concrete type, since the kind's type is the routing key.
//
// Embedding [Kind] in a struct is the easiest way to satisfy Event.
type Event interface {
	IsEvent()
}

// Kind may be embedded in a struct to mark it as an [Event].
//
//	type GameFocus struct {
//		eventbus.Kind
//		Focused bool
//	}
type Kind struct{}

func (Kind) IsEvent() {}

// HandlerID identifies a subscription within an event kind.
// Subscribing the same HandlerID twice for the same kind is rejected, which makes named subscriptions idempotent.
type HandlerID string

// Handler reacts to an event on the fan-out path.
type Handler[T Event] func(evt T)

// ChainHandler reacts to an event on the priority path.
// The chain only moves on to the next handler once next is called, which may happen during or after the call to ChainHandler.
// Use ctl to stop the chain, so no further handlers or completion callback are run.
type ChainHandler[T Event] func(next func(), evt T, ctl Control)

// Control is given to each [ChainHandler] to influence the chain it's part of.
type Control interface {
	// StopHandler prevents the chain from advancing past the current handler.
	// The completion callback will not be called.
	// This doesn't interrupt a handler that's already running, and has no effect once the handler has called next.
	StopHandler()
}

func kindOf[T Event]() reflect.Type {
	return reflect.TypeFor[T]()
}
