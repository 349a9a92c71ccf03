// Package env reads settings from prefixed environment variables.
package env

import (
	"os"
	"strconv"
	"strings"
)

var (
	DefaultTrue  = []string{"1", "yes", "true", "on"}  // DefaultTrue are the values considered "true" when using [Source.Bool].
	DefaultFalse = []string{"0", "no", "false", "off"} // DefaultFalse are the values considered "false" when using [Source.Bool].
)

// Source looks up variables that share a common prefix, like CHAINDEMO_LOG_LEVEL.
// Keys are compared case-insensitive.
type Source struct {
	prefix  string
	environ func() []string
}

// New creates a [Source] for the given prefix.
// An underscore is placed between the prefix and each key.
func New(prefix string) *Source {
	return &Source{prefix: prefix, environ: os.Environ}
}

func (s *Source) vars() map[string]string {
	envMap := map[string]string{}
	for _, entry := range s.environ() {
		key, val, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		envMap[strings.ToLower(key)] = val
	}
	return envMap
}

func (s *Source) name(key string) string {
	if len(s.prefix) == 0 {
		return strings.ToLower(key)
	}
	return strings.ToLower(s.prefix + "_" + key)
}

// Name returns the full variable name for key, as it should be documented to users.
func (s *Source) Name(key string) string {
	return strings.ToUpper(s.name(key))
}

// Val will get the variable for key.
// If the variable isn't set, or is blank, then defaultVal will be returned.
func (s *Source) Val(key string, defaultVal string) string {
	val, ok := s.vars()[s.name(key)]
	if !ok {
		return defaultVal
	}
	trimmed := strings.TrimSpace(val)
	if len(trimmed) == 0 {
		return defaultVal
	}
	return trimmed
}

// Bool interprets the variable for key using [DefaultTrue] and [DefaultFalse].
// The defaultVal will be returned if the variable isn't set, is empty, or isn't recognized.
func (s *Source) Bool(key string, defaultVal bool) bool {
	sval := strings.ToLower(s.Val(key, ""))
	if len(sval) == 0 {
		return defaultVal
	}
	for _, v := range DefaultTrue {
		if sval == v {
			return true
		}
	}
	for _, v := range DefaultFalse {
		if sval == v {
			return false
		}
	}
	return defaultVal
}

// Int interprets the variable for key as an integer, returning defaultVal if it isn't set or isn't valid.
func (s *Source) Int(key string, defaultVal int) int {
	sval := s.Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	ival, err := strconv.Atoi(sval)
	if err != nil {
		return defaultVal
	}
	return ival
}
