package scenario

import (
	"testing"

	"github.com/besurechan/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(t *testing.T, s *Scenario) ([]Result, []string) {
	t.Helper()
	require.NoError(t, s.Validate())
	var trace []string
	results := s.Run(eventbus.New(), func(step Step) {
		switch step.Kind {
		case StepHandler, StepChain, StepResume:
			trace = append(trace, string(step.Kind)+":"+step.Handler)
		case StepComplete:
			trace = append(trace, "complete")
		}
	})
	return results, trace
}

func TestRun_Default(t *testing.T) {
	results, trace := testRun(t, Default())
	assert.Equal(t, []string{"handler:logger", "chain:B", "chain:A", "complete"}, trace)
	require.Len(t, results, 1)
	assert.Equal(t, eventbus.ChainComplete, results[0].State)
}

func TestRun_Stop(t *testing.T) {
	s := &Scenario{
		Event:      EventFocus,
		Dispatches: 2,
		Chain: []ChainHandler{
			{ID: "gate", Priority: 5, Action: ActionStop},
			{ID: "after", Priority: 1, Action: ActionContinue},
		},
	}
	results, trace := testRun(t, s)
	assert.Equal(t, []string{"chain:gate", "chain:gate"}, trace)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, eventbus.ChainStopped, r.State)
		assert.Equal(t, 0, r.Cursor, "Should stop on the gate")
	}
}

func TestRun_Stall(t *testing.T) {
	s := &Scenario{
		Event:      EventPause,
		Dispatches: 1,
		Chain: []ChainHandler{
			{ID: "first", Priority: 2, Action: ActionContinue},
			{ID: "stuck", Priority: 1, Action: ActionStall},
			{ID: "never", Priority: 0, Action: ActionContinue},
		},
	}
	results, trace := testRun(t, s)
	assert.Equal(t, []string{"chain:first", "chain:stuck"}, trace)
	assert.Equal(t, eventbus.ChainSuspended, results[0].State)
	assert.Equal(t, 1, results[0].Cursor)
}

func TestRun_Defer(t *testing.T) {
	s := &Scenario{
		Event:      EventPause,
		Dispatches: 1,
		Handlers:   []string{"menu"},
		Chain: []ChainHandler{
			{ID: "fade", Priority: 5, Action: ActionDefer},
			{ID: "music", Priority: 2, Action: ActionDefer},
			{ID: "hud", Priority: 1, Action: ActionContinue},
		},
	}
	results, trace := testRun(t, s)
	assert.Equal(t, []string{
		"handler:menu",
		"chain:fade",
		"resume:fade",
		"chain:music",
		"resume:music",
		"chain:hud",
		"complete",
	}, trace)
	assert.Equal(t, eventbus.ChainComplete, results[0].State)
}
