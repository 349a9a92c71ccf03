package scenario

import (
	"github.com/besurechan/eventbus"
)

const (
	EventFocus = "focus"
	EventPause = "pause"
)

// GameFocus is dispatched when the game window gains or loses focus.
type GameFocus struct {
	eventbus.Kind
	Focused bool
}

// GamePause is dispatched when the game is paused.
type GamePause struct {
	eventbus.Kind
}

// StepKind classifies a [Step] in a run trace.
type StepKind string

const (
	StepHandler  StepKind = "handler"  // A fan-out handler was called.
	StepChain    StepKind = "chain"    // A chain handler was called.
	StepResume   StepKind = "resume"   // A deferred continuation was called.
	StepComplete StepKind = "complete" // The chain's completion callback was called.
	StepResult   StepKind = "result"   // The dispatch returned, and the chain state is known.
)

// Step is a single entry in the trace of a run.
type Step struct {
	Dispatch int
	Kind     StepKind
	Handler  string
	Detail   string
}

// Result is the state of a chain once its dispatch, and any deferred continuations, have returned.
type Result struct {
	State  eventbus.ChainState
	Cursor int
}

// Run subscribes the scenario's handlers to bus and dispatches the event, reporting each [Step] to emit.
// The Scenario should be valid, see [Scenario.Validate].
func (s *Scenario) Run(bus *eventbus.Bus, emit func(Step)) []Result {
	if emit == nil {
		emit = func(Step) {}
	}
	switch s.Event {
	case EventPause:
		return run(s, bus, func(int) GamePause { return GamePause{} }, emit)
	default:
		return run(s, bus, func(i int) GameFocus {
			// Alternate between gaining and losing focus.
			return GameFocus{Focused: i%2 == 0}
		}, emit)
	}
}

func run[T eventbus.Event](s *Scenario, bus *eventbus.Bus, newEvent func(i int) T, emit func(Step)) []Result {
	dispatch := 0
	for _, id := range s.Handlers {
		eventbus.SubscribeID(bus, eventbus.HandlerID(id), func(T) {
			emit(Step{Dispatch: dispatch, Kind: StepHandler, Handler: id})
		})
	}

	var deferred []func()
	for _, h := range s.Chain {
		eventbus.SubscribeChainID(bus, eventbus.HandlerID(h.ID), func(next func(), _ T, ctl eventbus.Control) {
			emit(Step{Dispatch: dispatch, Kind: StepChain, Handler: h.ID, Detail: string(h.Action)})
			switch h.Action {
			case ActionStop:
				ctl.StopHandler()
				next()
			case ActionStall:
			case ActionDefer:
				id := h.ID
				deferred = append(deferred, func() {
					emit(Step{Dispatch: dispatch, Kind: StepResume, Handler: id})
					next()
				})
			default:
				next()
			}
		}, h.Priority)
	}

	results := make([]Result, 0, s.Dispatches)
	for ; dispatch < s.Dispatches; dispatch++ {
		evt := newEvent(dispatch)
		eventbus.Dispatch(bus, evt)
		chain := eventbus.DispatchChain(bus, evt, func() {
			emit(Step{Dispatch: dispatch, Kind: StepComplete})
		})
		// Deferred continuations may queue more of their own as the chain advances.
		for len(deferred) > 0 {
			resume := deferred[0]
			deferred = deferred[1:]
			resume()
		}
		result := Result{State: chain.State(), Cursor: chain.Cursor()}
		emit(Step{Dispatch: dispatch, Kind: StepResult, Detail: result.State.String()})
		results = append(results, result)
	}
	return results
}
