// Package scenario describes event bus dispatch scenarios that can be loaded from a file and run against a bus.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrFormat  = errors.New("unsupported scenario format")
	ErrInvalid = errors.New("invalid scenario")
)

// Format is the encoding of a scenario file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks a [Format] from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrFormat, filepath.Ext(path))
	}
}

// Action is what a chain handler does when it receives the event.
type Action string

const (
	ActionContinue Action = "continue" // Pass the event along right away.
	ActionStop     Action = "stop"     // Stop the chain, then pass the event along, which ends it.
	ActionStall    Action = "stall"    // Never pass the event along.
	ActionDefer    Action = "defer"    // Pass the event along after the dispatch returns.
)

func (a Action) valid() bool {
	switch a {
	case ActionContinue, ActionStop, ActionStall, ActionDefer:
		return true
	default:
		return false
	}
}

// ChainHandler describes a handler on the priority path.
type ChainHandler struct {
	ID       string `yaml:"id" toml:"id"`
	Priority int    `yaml:"priority" toml:"priority"`
	Action   Action `yaml:"action" toml:"action"`
}

// Scenario is a set of handlers subscribed to one event kind, and how often it's dispatched.
type Scenario struct {
	Name       string         `yaml:"name" toml:"name"`
	Event      string         `yaml:"event" toml:"event"`
	Dispatches int            `yaml:"dispatches" toml:"dispatches"`
	Handlers   []string       `yaml:"handlers" toml:"handlers"`
	Chain      []ChainHandler `yaml:"chain" toml:"chain"`
}

// Default is the scenario used when none is given.
// Handler A has priority 1 and B has priority 10, so B runs before A, and then the dispatch completes.
func Default() *Scenario {
	return &Scenario{
		Name:       "focus",
		Event:      EventFocus,
		Dispatches: 1,
		Handlers:   []string{"logger"},
		Chain: []ChainHandler{
			{ID: "A", Priority: 1, Action: ActionContinue},
			{ID: "B", Priority: 10, Action: ActionContinue},
		},
	}
}

// Load reads and validates a scenario file, choosing the decoder by file extension.
func Load(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario '%s': %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a scenario.
// Missing names and dispatch counts are filled with defaults.
func Parse(data []byte, format Format) (*Scenario, error) {
	s := new(Scenario)
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("failed to decode yaml scenario: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode toml scenario: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown toml key '%s'", ErrInvalid, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrFormat, format)
	}
	if len(s.Name) == 0 {
		s.Name = s.Event
	}
	if s.Dispatches == 0 {
		s.Dispatches = 1
	}
	for i := range s.Chain {
		if len(s.Chain[i].Action) == 0 {
			s.Chain[i].Action = ActionContinue
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports every problem with the scenario, not just the first.
func (s *Scenario) Validate() error {
	errs := new(Collector)
	switch s.Event {
	case EventFocus, EventPause:
	case "":
		errs.Addf("%w: event is required", ErrInvalid)
	default:
		errs.Addf("%w: unknown event '%s', expected '%s' or '%s'", ErrInvalid, s.Event, EventFocus, EventPause)
	}
	if s.Dispatches < 1 {
		errs.Addf("%w: dispatches must be >= 1, got %d", ErrInvalid, s.Dispatches)
	}
	seen := map[string]bool{}
	for i, id := range s.Handlers {
		if len(strings.TrimSpace(id)) == 0 {
			errs.Addf("%w: handler %d has no id", ErrInvalid, i)
			continue
		}
		if seen[id] {
			errs.Addf("%w: handler id '%s' is used more than once", ErrInvalid, id)
		}
		seen[id] = true
	}
	seen = map[string]bool{}
	for i, h := range s.Chain {
		if len(strings.TrimSpace(h.ID)) == 0 {
			errs.Addf("%w: chain handler %d has no id", ErrInvalid, i)
		} else if seen[h.ID] {
			errs.Addf("%w: chain handler id '%s' is used more than once", ErrInvalid, h.ID)
		}
		seen[h.ID] = true
		if !h.Action.valid() {
			errs.Addf("%w: chain handler '%s' has unknown action '%s'", ErrInvalid, h.ID, h.Action)
		}
	}
	return errs.Result()
}
