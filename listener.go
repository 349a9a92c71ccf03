package eventbus

import (
	"fmt"
	"reflect"
)

// Listener identifies a single subscription, and is used to remove it with [Bus.Unsubscribe].
// A nil *Listener is returned when a subscription is rejected, and it's always safe to unsubscribe with it.
//
// A Listener doesn't hold onto the handler. Once it's been used to unsubscribe, or the bus has been cleared, it's inert.
type Listener struct {
	bus     *Bus
	kind    reflect.Type
	id      HandlerID
	serial  uint64
	chained bool
}

// EventType returns the event kind this Listener subscribed to.
func (l *Listener) EventType() reflect.Type {
	if l == nil {
		return nil
	}
	return l.kind
}

// ID returns the [HandlerID] of the subscription.
// This is empty for anonymous subscriptions.
func (l *Listener) ID() HandlerID {
	if l == nil {
		return ""
	}
	return l.id
}

// Chained reports whether this Listener belongs to the priority path.
func (l *Listener) Chained() bool {
	return l != nil && l.chained
}

func (l *Listener) String() string {
	if l == nil {
		return "<nil listener>"
	}
	path := "fan-out"
	if l.chained {
		path = "chain"
	}
	if len(l.id) == 0 {
		return fmt.Sprintf("%s#%d (%s)", l.kind, l.serial, path)
	}
	return fmt.Sprintf("%s#%d '%s' (%s)", l.kind, l.serial, l.id, path)
}
