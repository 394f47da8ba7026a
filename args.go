// Package args provides POSIX/GNU-style command-line argument parsing. It
// binds command-line parameters to ordinary Go variables and maps the raw
// argument vector onto them through a streaming matching engine.
//
// The package supports single-dash shorthand options (POSIX-style, e.g.
// -v), double-dash long-form options (GNU-style, e.g. --verbose), grouped
// short options (-abc), values attached to short options (-p8080, -p=8080)
// and long options (--port=8080), repeated accumulating options bound to
// slices, positional arguments, and the "--" escape after which every
// token is positional.
//
// # Usage
//
// Define variables, register them using Add, and then call Parse to
// process the command-line arguments:
//
//	func main() {
//	  var (
//	    port  int    = 8080        // Default value
//	    host  string = "localhost" // Default value
//	    verb  bool
//	    files []string
//	  )
//
//	  args.Summary("A one-line summary of what the command does.")
//
//	  // Add parameters, binding them to local variables.
//	  args.Add(&port, 'p', "port", "Port to listen on")
//	  args.Add(&host, 'h', "host", "Host address to bind to")
//	  args.Add(&verb, 'v', "verbose", "Enable verbose logging")
//	  args.Add(&files, 0, "", "Input files")
//
//	  // Parse the command-line arguments.
//	  args.Parse()
//
//	  fmt.Printf("Serving %v on %s:%d\n", files, host, port)
//	}
//
// Bool variables become flags that take no value, slice variables become
// repeatable options accumulating every occurrence in order, and all
// other supported types become single-value options where the last
// occurrence wins. A variable registered with neither a short nor a long
// name captures positional arguments.
package args

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/deep-rent/args/collect"
	"github.com/deep-rent/args/diag"
	"github.com/deep-rent/args/match"
	"github.com/deep-rent/args/param"
	"github.com/deep-rent/args/source"
)

// field holds the metadata for a single registered parameter.
type field struct {
	val  reflect.Value
	def  any // The default value.
	desc string
}

// Set manages a collection of registered parameters. Parameter tags are
// indexes into the field list.
type Set struct {
	cmd    string
	sum    string
	prefix string // Env fallback prefix; empty disables the fallback.
	fields []*field
	specs  []param.Spec[int]
}

// New creates a new, empty parameter set. The command is used in the
// usage message.
func New(cmd string) *Set {
	return &Set{cmd: cmd}
}

// Summary sets a one-line description for the command, shown in the
// usage message. If not set, no summary is displayed.
func (s *Set) Summary(sum string) { s.sum = sum }

// Env enables environment-variable fallback for long-named parameters
// that were not supplied on the command line. For a parameter --log-level
// and prefix "MYAPP", the variable MYAPP_LOG_LEVEL is consulted.
func (s *Set) Env(prefix string) { s.prefix = prefix }

// Add registers a new parameter with the set. It binds a command-line
// parameter to the variable pointed to by v. The variable's initial value
// is used as the default, if present. The variable must be a pointer to
// one of the supported types: string, int, uint, float, bool, or a slice
// of the non-bool ones.
//
// The short name is a single-character abbreviation (e.g. 'v'), 0 for
// none; the long name is a more descriptive word (e.g. "verbose"), empty
// for none. Names are matched case-sensitively. Registering a variable
// with neither name makes it positional: a non-slice positional captures
// the last unprefixed token, a slice positional captures all of them in
// order. The description provides a brief explanation of the parameter's
// purpose for use in the help message.
func (s *Set) Add(v any, short rune, long, desc string) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		panic("args: destination must be a pointer")
	}
	elem := val.Elem()

	arity := param.One
	switch elem.Kind() {
	case reflect.Bool:
		arity = param.None
	case reflect.Slice:
		arity = param.Many
		if !scalar(elem.Type().Elem().Kind()) {
			panic(fmt.Sprintf("args: unsupported slice element type: %s", elem.Type().Elem()))
		}
	default:
		if !scalar(elem.Kind()) {
			panic(fmt.Sprintf("args: unsupported type: %s", elem.Type()))
		}
	}

	spec := param.Spec[int]{ID: len(s.fields), Short: short, Long: long, Arity: arity}
	if err := spec.Validate(); err != nil {
		panic("args: " + err.Error())
	}
	for _, prev := range s.specs {
		if short != 0 && prev.Short == short {
			panic(fmt.Sprintf("args: duplicate short name -%c", short))
		}
		if long != "" && prev.Long == long {
			panic(fmt.Sprintf("args: duplicate long name --%s", long))
		}
		if spec.Positional() && prev.Positional() {
			panic("args: duplicate positional parameter")
		}
	}

	s.fields = append(s.fields, &field{
		val:  elem,
		def:  elem.Interface(), // Capture initial value as default.
		desc: desc,
	})
	s.specs = append(s.specs, spec)
}

// ErrShowHelp acts as a signal to display a help message and exit
// successfully rather than indicating a failure.
var ErrShowHelp = errors.New("show help")

// Error describes a failed parse. It wraps one of the diag error kinds
// and carries the structured diagnostic recorded by the matcher.
type Error struct {
	Err  error
	Diag diag.Diagnostic
}

func (e *Error) Error() string {
	return strings.TrimSuffix(diag.Report(e.Err, &e.Diag), "\n")
}

func (e *Error) Unwrap() error { return e.Err }

// Parse maps the given argument slice to the registered parameters. It
// must be called after all parameters have been added.
//
// If a --help token is encountered before any "--", Parse returns
// ErrShowHelp. Malformed input yields an *Error carrying the matcher's
// diagnostic; invalid values for typed variables yield plain errors.
func (s *Set) Parse(argv []string) error {
	for _, arg := range argv {
		if arg == "--" {
			break
		}
		if arg == "--help" {
			return ErrShowHelp
		}
	}

	var d diag.Diagnostic
	m := match.New(s.specs, source.FromSlice(argv), match.WithDiagnostic(&d))

	seen := make([]bool, len(s.fields))
	for {
		arg, err := m.Next()
		if err != nil {
			return &Error{Err: err, Diag: d}
		}
		if arg == nil {
			break
		}
		f := s.fields[arg.Param.ID]
		seen[arg.Param.ID] = true
		if arg.Param.Arity == param.None {
			f.val.SetBool(true)
			continue
		}
		if err := s.apply(f, arg.Param, arg.Value); err != nil {
			return err
		}
	}

	if s.prefix != "" {
		if err := s.fromEnv(seen); err != nil {
			return err
		}
	}
	return nil
}

// apply parses the string value and stores it in the field, appending if
// the destination is a slice.
func (s *Set) apply(f *field, spec *param.Spec[int], value string) error {
	v := f.val
	if v.Kind() == reflect.Slice {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := set(elem, value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, spec.Name(), err)
		}
		v.Set(reflect.Append(v, elem))
		return nil
	}
	if err := set(v, value); err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, spec.Name(), err)
	}
	return nil
}

// scalar reports whether the kind can be parsed from a string value.
func scalar(kind reflect.Kind) bool {
	switch kind {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// set converts the string and stores it in val.
func set(val reflect.Value, value string) error {
	switch kind := val.Kind(); kind {
	case reflect.String:
		val.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		val.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, val.Type().Bits())
		if err != nil {
			return err
		}
		val.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, val.Type().Bits())
		if err != nil {
			return err
		}
		val.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, val.Type().Bits())
		if err != nil {
			return err
		}
		val.SetFloat(f)
	default:
		// Add prevents unsupported types; reaching this is a bug in the
		// package itself.
		panic(fmt.Sprintf("args: unsupported type: %s", kind))
	}
	return nil
}

// Collect parses the given argument slice into aggregate buckets keyed by
// field index instead of applying values to the bound variables. It is a
// lower-level alternative to Parse for callers that want to inspect raw
// occurrences.
func (s *Set) Collect(argv []string) (collect.Result[int], error) {
	var d diag.Diagnostic
	m := match.New(s.specs, source.FromSlice(argv), match.WithDiagnostic(&d))
	res, err := collect.All(m)
	if err != nil {
		return res, &Error{Err: err, Diag: d}
	}
	return res, nil
}

// std is the default, package-level parameter set.
var std = New(filepath.Base(os.Args[0]))

// Summary sets a one-line description for the command, shown in the
// usage message of the default set. If not set, no summary is displayed.
func Summary(sum string) { std.Summary(sum) }

// Add registers a parameter with the default set.
func Add(v any, short rune, long, desc string) { std.Add(v, short, long, desc) }

// Env enables environment-variable fallback on the default set.
func Env(prefix string) { std.Env(prefix) }

// Parse parses the process arguments using the default set.
//
// This function must be called after all parameters have been added. If a
// --help token is encountered, it prints the usage message and exits. On
// error, it prints the error message and exits with a non-zero status
// code.
func Parse() {
	err := std.Parse(os.Args[1:])
	if err == nil {
		return
	}
	code := 0
	if !errors.Is(err, ErrShowHelp) {
		var e *Error
		if errors.As(err, &e) {
			diag.Fprint(os.Stderr, e.Err, &e.Diag)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		code = 1
	}
	Usage()
	os.Exit(code)
}

// Usage prints the help message for the default set.
func Usage() { fmt.Fprint(os.Stdout, std.Usage()) }
