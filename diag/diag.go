// Package diag captures and renders structured information about argument
// parse failures. A matcher writes into a caller-supplied Diagnostic slot
// at the moment an error is about to be returned; the caller then renders
// the failure with Report, Fprint, or JSON.
package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Parse-time error kinds. All of them are recoverable and surfaced to the
// caller; none abort the process.
var (
	// ErrInvalidArgument reports a token or short character that matches
	// no declared parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDoesntTakeValue reports an inline value supplied to a flag.
	ErrDoesntTakeValue = errors.New("argument does not take a value")
	// ErrMissingValue reports an option that requires a value when no
	// further token was available to supply one.
	ErrMissingValue = errors.New("argument requires a value")
)

// Diagnostic holds the details of the most recent match failure. The zero
// value is ready for use as a slot passed to a matcher.
type Diagnostic struct {
	// Token is the offending raw token as read from the source.
	Token string
	// Short is the short name under consideration when the failure
	// occurred, or 0 if none was.
	Short rune
	// Long is the long name under consideration when the failure
	// occurred, or empty if none was.
	Long string
}

// Name returns the attempted parameter name including its dash prefix. If
// no name was under consideration, the raw offending token is returned.
func (d *Diagnostic) Name() string {
	switch {
	case d.Short != 0:
		return "-" + string(d.Short)
	case d.Long != "":
		return "--" + d.Long
	default:
		return d.Token
	}
}

// Report renders err and d as a human-readable, newline-terminated
// message. Unrecognized error values are reported as invalid arguments.
func Report(err error, d *Diagnostic) string {
	return message(err, d.Name())
}

// Fprint writes the rendered message to w, highlighting the argument name
// when color output is enabled. Color is suppressed automatically in
// non-terminal environments or when NO_COLOR is set.
func Fprint(w io.Writer, err error, d *Diagnostic) (int, error) {
	name := color.New(color.FgRed, color.Bold).Sprint(d.Name())
	return io.WriteString(w, message(err, name))
}

func message(err error, name string) string {
	switch {
	case errors.Is(err, ErrDoesntTakeValue):
		return fmt.Sprintf("The argument '%s' does not take a value\n", name)
	case errors.Is(err, ErrMissingValue):
		return fmt.Sprintf("The argument '%s' requires a value but none was supplied\n", name)
	default:
		return fmt.Sprintf("Invalid argument '%s'\n", name)
	}
}
