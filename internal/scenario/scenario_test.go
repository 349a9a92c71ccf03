package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
name: focus-chain
event: focus
dispatches: 2
handlers:
  - audio
chain:
  - id: ui
    priority: 10
  - id: input
    priority: 1
    action: stop
`

const testTOML = `
event = "pause"
handlers = ["menu"]

[[chain]]
id = "fade"
priority = 5
action = "defer"

[[chain]]
id = "music"
priority = 2
`

func TestParse_YAML(t *testing.T) {
	s, err := Parse([]byte(testYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "focus-chain", s.Name)
	assert.Equal(t, EventFocus, s.Event)
	assert.Equal(t, 2, s.Dispatches)
	assert.Equal(t, []string{"audio"}, s.Handlers)
	require.Len(t, s.Chain, 2)
	assert.Equal(t, ChainHandler{ID: "ui", Priority: 10, Action: ActionContinue}, s.Chain[0], "Action should default to continue")
	assert.Equal(t, ActionStop, s.Chain[1].Action)
}

func TestParse_TOML(t *testing.T) {
	s, err := Parse([]byte(testTOML), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "pause", s.Name, "Name should default to the event")
	assert.Equal(t, 1, s.Dispatches)
	require.Len(t, s.Chain, 2)
	assert.Equal(t, ActionDefer, s.Chain[0].Action)
	assert.Equal(t, ActionContinue, s.Chain[1].Action)
}

func TestParse_UnknownFields(t *testing.T) {
	_, err := Parse([]byte("event: focus\npriority: 3\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte("event = \"focus\"\nextra = true\n"), FormatTOML)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("event: focus"), Format("json"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestValidate_CollectsAll(t *testing.T) {
	s := &Scenario{
		Event:      "resize",
		Dispatches: -1,
		Handlers:   []string{"a", "a", " "},
		Chain: []ChainHandler{
			{ID: "x", Action: ActionContinue},
			{ID: "x", Action: "jump"},
		},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	var collected *Collector
	require.True(t, errors.As(err, &collected))
	assert.Len(t, collected.Unwrap(), 6)
	assert.Contains(t, err.Error(), "unknown event 'resize'")
	assert.Contains(t, err.Error(), "unknown action 'jump'")
}

func TestDefault_Valid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestFormatOf(t *testing.T) {
	for path, expected := range map[string]Format{
		"a.yaml":  FormatYAML,
		"b.YML":   FormatYAML,
		"c.toml":  FormatTOML,
		"dir/d.x": "",
	} {
		format, err := FormatOf(path)
		if expected == "" {
			assert.ErrorIs(t, err, ErrFormat, path)
			continue
		}
		assert.NoError(t, err, path)
		assert.Equal(t, expected, format, path)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(testTOML), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EventPause, s.Event)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
