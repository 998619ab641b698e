package config

import (
	"strconv"
	"strings"
)

// setSource records where field name got its value. sources may be nil.
func setSource(sources map[string]ConfigSource, name string, source ConfigSource) {
	if sources != nil {
		sources[name] = source
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// intFromString parses a decimal integer, reporting false on bad input.
func intFromString(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
