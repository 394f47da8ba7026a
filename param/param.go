// Package param defines declarations of recognizable command-line
// parameters. A declaration pairs the names a parameter is known by (a
// single-letter short name, a long name, or neither for positionals) with
// its value arity and an opaque, caller-chosen tag that identifies the
// declaration in match results.
//
// Declarations are plain immutable values. They are built once before
// parsing begins and shared read-only with any number of matchers.
package param

import "fmt"

// Arity describes how many values a parameter consumes per match.
type Arity uint8

const (
	// None marks a pure flag that takes no value.
	None Arity = iota
	// One marks an option that consumes exactly one value per match.
	One
	// Many marks an option that consumes one value per occurrence, with
	// values accumulating in encounter order.
	Many
)

// String returns the lower-case name of the arity.
func (a Arity) String() string {
	switch a {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return "none"
	}
}

// Spec declares a single recognizable parameter. The type parameter ID is
// an opaque tag chosen by the caller (typically an index or enum value)
// that identifies which declaration produced a match. It need not be
// unique, though it usually is.
//
// A Spec with neither a short nor a long name is positional and must not
// have arity None; a nameless flag cannot be matched by anything. At most
// one positional declaration is ever matched by a parser: the first one in
// declaration order. Declaring further positionals after one marked Many
// has no effect.
type Spec[ID any] struct {
	// ID is the caller-defined tag reported back on a match.
	ID ID
	// Short is the single-character name usable after one dash,
	// or 0 if the parameter has no short name.
	Short rune
	// Long is the multi-character name usable after two dashes,
	// or empty if the parameter has no long name.
	Long string
	// Arity is the number of values the parameter consumes per match.
	Arity Arity
}

// Positional reports whether the declaration has neither a short nor a
// long name and is therefore matched by position among unprefixed tokens.
func (s Spec[ID]) Positional() bool { return s.Short == 0 && s.Long == "" }

// Name returns the parameter's display name including its dash prefix.
// The long name is preferred over the short name; for positionals, the
// placeholder "..." is returned.
func (s Spec[ID]) Name() string {
	switch {
	case s.Long != "":
		return "--" + s.Long
	case s.Short != 0:
		return "-" + string(s.Short)
	default:
		return "..."
	}
}

// Validate checks the declaration for configuration errors. It returns an
// error if the Spec is a nameless flag or if the long name is only a
// single character (which belongs after a single dash instead).
func (s Spec[ID]) Validate() error {
	if s.Positional() && s.Arity == None {
		return fmt.Errorf("positional parameter must take a value")
	}
	if len(s.Long) == 1 {
		return fmt.Errorf("long name %q must be longer than one character", s.Long)
	}
	return nil
}

// Flag declares a parameter that takes no value.
func Flag[ID any](id ID, short rune, long string) Spec[ID] {
	return Spec[ID]{ID: id, Short: short, Long: long, Arity: None}
}

// Option declares a parameter that consumes one value per occurrence.
// Pass One to keep only the last value, or Many to accumulate all of them.
func Option[ID any](id ID, short rune, long string, arity Arity) Spec[ID] {
	return Spec[ID]{ID: id, Short: short, Long: long, Arity: arity}
}

// Positional declares a nameless parameter matched by position. Unprefixed
// tokens and everything following a bare "--" are captured by the first
// positional declaration in the list.
func Positional[ID any](id ID) Spec[ID] {
	return Spec[ID]{ID: id, Arity: Many}
}
