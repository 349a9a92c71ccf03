/*
Package eventbus provides a type-safe, in-process event bus for interactive applications like games, where subsystems should react to each other without being coupled.

# Design Priorities

  - It should be type safe, so handlers receive the concrete event kind they subscribed to without assertions.
  - It should be deterministic. Handlers run synchronously, in an order that's defined and documented.
  - It should let handlers cooperate, by passing an event along a chain, holding it, or stopping it.
  - It should never fail for the caller. Missing handlers, duplicate subscriptions, and stale listeners are all silent no-ops.

# Event Kinds

Every [Event] kind is a distinct Go type, usually a struct that embeds [Kind].
The type itself is the routing key, so an event only reaches handlers that subscribed to exactly that type.
Routing uses the type parameter, not the dynamic type of the value, so always dispatch with the concrete kind.

	type GameFocus struct {
		eventbus.Kind
	}

# Bus Initialization

Use [New] to create a [Bus] and pass it to the components that need it.
If a single, global [Bus] is more convenient, then [Instance] may be used instead.

A [Bus] does no locking, and is intended to be used from one goroutine, like the one running a game loop.

# Fan-out Path

Handlers subscribed with [Subscribe] are all called by [Dispatch], in the order they were subscribed.
Use [SubscribeID] to give a handler a [HandlerID]. Subscribing the same ID twice for the same kind returns a nil [Listener] and changes nothing.

# Priority Path

Handlers subscribed with [SubscribeChain] form a chain that's started with [DispatchChain].
Handlers with a higher priority run first, and handlers with equal priority run in the order they were subscribed.

Each [ChainHandler] receives a continuation function, and the chain only moves on once it's called.
This means a handler can:
  - Call the continuation right away to pass the event along.
  - Keep the continuation and call it later, like at the end of an animation. The chain is [ChainSuspended] until then.
  - Call [Control.StopHandler] to end the chain. No further handlers or completion callback will run.

Once every handler has passed the event along, the completion callback given to [DispatchChain] is called.
The returned [Chain] can be inspected to see how far a dispatch has progressed.

# Unsubscribing

Every subscription returns a [Listener], which is passed to [Bus.Unsubscribe] to remove it.
It's always safe to unsubscribe with a nil, stale, or foreign [Listener].
*/
package eventbus
