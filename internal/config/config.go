// Package config holds the binder's ambient, rarely-changed settings:
// the default integer kind, the BinderOptions struct, and a test-mode
// switch, the way the teacher's internal/config package holds its own
// built-in name constants and mode flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// IsTestMode mirrors the teacher's package-level mode switch. Nothing
// in this repository reads it; setting it changes no diagnostic.
var IsTestMode = false

// DefaultIntegerKind is the type an integer literal resolves to when no
// surrounding context narrows or widens it (spec §4.5, §9 open
// question: context-driven resolution with this fallback).
const DefaultIntegerKind = "i32"

// BinderOptions are the knobs a caller can set on a Binder. They are
// deliberately few: the spec's language rules are fixed, but a host
// program may still want to tune warning policy the way `funxy`'s
// ext.Config tunes Go-interop behavior.
type BinderOptions struct {
	// StrictNarrowing is consulted only when Assignable reports
	// ImplicitNarrowWarn, which Assignable never returns, so it changes
	// no result. Non-literal narrowing is always a TypeMismatch, and an
	// in-range integer literal adopts the target kind whatever its value.
	StrictNarrowing bool `yaml:"strict_narrowing"`

	// WarnOnShadow is decoded from YAML but the binder does not read it:
	// a declaration that shadows a binding from an enclosing frame is
	// always legal (spec §3.5) and reports nothing, whatever its value.
	WarnOnShadow bool `yaml:"warn_on_shadow"`

	// TreatWarningsAsErrors is decoded from YAML but nothing reads it:
	// Collector.HasErrors counts only Error-severity reports, so a
	// Warning (e.g. NonExhaustiveMatch) never makes it true.
	TreatWarningsAsErrors bool `yaml:"treat_warnings_as_errors"`
}

// DefaultOptions returns the binder's out-of-the-box configuration.
func DefaultOptions() BinderOptions {
	return BinderOptions{}
}

// LoadOptions reads a YAML document (see BinderOptions field tags) and
// overlays it on DefaultOptions.
func LoadOptions(path string) (BinderOptions, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}
