// Package match implements the streaming argument matching engine. A
// Matcher consumes raw tokens from a source one at a time and yields one
// matched argument per call to Next, resolving each token against a
// read-only list of parameter declarations.
//
// The matcher is resumable: a single raw token such as "-abc" may yield
// several matches across successive calls, tracked by internal state that
// is never exposed to the caller. It understands GNU long options with
// inline values (--name=value), POSIX short option clusters with attached
// values (-abc, -ovalue, -o=value), and the "--" escape after which every
// remaining token is positional.
//
// # Usage
//
// Declare the parameters, wrap the tokens in a source, and pull matches
// until Next returns nil:
//
//	specs := []param.Spec[int]{
//		param.Flag(0, 'v', "verbose"),
//		param.Option(1, 'o', "output", param.One),
//		param.Positional(2),
//	}
//
//	var d diag.Diagnostic
//	m := match.New(specs, source.FromArgs(), match.WithDiagnostic(&d))
//	for {
//		arg, err := m.Next()
//		if err != nil {
//			fmt.Fprint(os.Stderr, diag.Report(err, &d))
//			os.Exit(1)
//		}
//		if arg == nil {
//			break
//		}
//		// Dispatch on arg.Param.ID...
//	}
//
// Matched values are always owned strings. When a value is sliced out of
// a longer token, the slice shares the token's immutable backing array,
// so no copying occurs either way.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/deep-rent/args/diag"
	"github.com/deep-rent/args/param"
	"github.com/deep-rent/args/source"
)

// DefaultSeparators is the set of characters that attach an inline value
// to a named parameter, as in --name=value.
const DefaultSeparators = "="

// Arg is one parse event: a declared parameter together with the value it
// consumed, if any.
type Arg[ID any] struct {
	// Param points into the declaration list the matcher was built with.
	Param *param.Spec[ID]
	// Value is the consumed value. It is meaningful if and only if
	// Param.Arity != param.None; flags always leave it empty.
	Value string
}

// state enumerates the matcher's resumable positions between calls.
type state uint8

const (
	// stateNormal means the next raw token is pulled from the source.
	stateNormal state = iota
	// stateChaining means the matcher is midway through a short option
	// cluster like -abc.
	stateChaining
	// statePositionalOnly means a bare "--" was seen and all remaining
	// tokens are positional values.
	statePositionalOnly
)

type config struct {
	seps string
	d    *diag.Diagnostic
}

// Option configures a Matcher.
type Option func(*config)

// WithSeparators overrides the set of assignment separator characters.
// Each rune in the string acts as a separator. An empty string is ignored.
func WithSeparators(seps string) Option {
	return func(c *config) {
		if seps != "" {
			c.seps = seps
		}
	}
}

// WithDiagnostic supplies a slot that the matcher fills with structured
// failure details immediately before returning an error. The slot is not
// touched on success paths.
func WithDiagnostic(d *diag.Diagnostic) Option {
	return func(c *config) { c.d = d }
}

// Matcher is the streaming matching engine. Each instance owns its state
// exclusively and must not be shared across goroutines; the declaration
// list, being read-only, may back any number of concurrent instances.
type Matcher[ID any] struct {
	specs []param.Spec[ID]
	src   source.Source
	seps  string
	d     *diag.Diagnostic

	state  state
	chain  string // raw token being chained, including the leading dash
	offset int    // byte offset of the next short name within chain

	pos       *param.Spec[ID] // cached first positional declaration
	posCached bool
}

// New creates a Matcher resolving tokens from src against specs. The
// specs slice is borrowed read-only for the lifetime of the matcher and
// matched first-in-declaration-order; declaring duplicate names is a
// caller error, and only the first of several positional declarations is
// ever matched.
func New[ID any](specs []param.Spec[ID], src source.Source, opts ...Option) *Matcher[ID] {
	cfg := config{seps: DefaultSeparators}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Matcher[ID]{
		specs: specs,
		src:   src,
		seps:  cfg.seps,
		d:     cfg.d,
	}
}

// Next returns the next matched argument, or nil once the source is
// exhausted. On malformed input it returns one of the diag error kinds,
// filling the diagnostic slot if one was supplied; any half-consumed
// short cluster is abandoned, so a further call resumes at the next raw
// token.
func (m *Matcher[ID]) Next() (*Arg[ID], error) {
	if m.state == stateChaining {
		return m.chained()
	}
	t, ok := m.src.Next()
	if !ok {
		return nil, nil
	}
	if m.state == statePositionalOnly {
		return m.positional(t)
	}
	switch {
	case t == "--":
		// The escape token itself is not emitted; the token after it
		// becomes the first unconditional positional value.
		m.state = statePositionalOnly
		t, ok = m.src.Next()
		if !ok {
			return nil, nil
		}
		return m.positional(t)
	case t == "-":
		// A lone dash conventionally means stdin and is positional.
		return m.positional(t)
	case strings.HasPrefix(t, "--"):
		return m.long(t)
	case strings.HasPrefix(t, "-"):
		m.state = stateChaining
		m.chain = t
		m.offset = 1
		return m.chained()
	default:
		return m.positional(t)
	}
}

// long resolves a token of the form --name or --name=value.
func (m *Matcher[ID]) long(t string) (*Arg[ID], error) {
	name := t[2:]
	var inline string
	var hasInline bool
	if i := strings.IndexAny(name, m.seps); i >= 0 {
		_, size := utf8.DecodeRuneInString(name[i:])
		name, inline, hasInline = name[:i], name[i+size:], true
	}
	spec := m.findLong(name)
	if spec == nil {
		return nil, m.fail(diag.ErrInvalidArgument, t, 0, name)
	}
	if spec.Arity == param.None {
		if hasInline {
			return nil, m.fail(diag.ErrDoesntTakeValue, t, 0, name)
		}
		return &Arg[ID]{Param: spec}, nil
	}
	if hasInline {
		return &Arg[ID]{Param: spec, Value: inline}, nil
	}
	v, ok := m.src.Next()
	if !ok {
		return nil, m.fail(diag.ErrMissingValue, t, 0, name)
	}
	return &Arg[ID]{Param: spec, Value: v}, nil
}

// chained resolves the next short name within the current cluster. A
// value-taking parameter consumes the rest of the cluster (or the next
// token) and always ends the chain.
func (m *Matcher[ID]) chained() (*Arg[ID], error) {
	t, off := m.chain, m.offset
	c, size := utf8.DecodeRuneInString(t[off:])
	spec := m.findShort(c)
	if spec == nil {
		m.state = stateNormal
		return nil, m.fail(diag.ErrInvalidArgument, t, c, "")
	}
	next := off + size

	if spec.Arity == param.None {
		if next < len(t) && m.isSep(t[next:]) {
			// A flag cannot be followed by =value.
			m.state = stateNormal
			return nil, m.fail(diag.ErrDoesntTakeValue, t, c, "")
		}
		if next < len(t) {
			m.offset = next
		} else {
			m.state = stateNormal
		}
		return &Arg[ID]{Param: spec}, nil
	}

	m.state = stateNormal
	switch {
	case next >= len(t):
		v, ok := m.src.Next()
		if !ok {
			return nil, m.fail(diag.ErrMissingValue, t, c, "")
		}
		return &Arg[ID]{Param: spec, Value: v}, nil
	case m.isSep(t[next:]):
		_, sepLen := utf8.DecodeRuneInString(t[next:])
		return &Arg[ID]{Param: spec, Value: t[next+sepLen:]}, nil
	default:
		return &Arg[ID]{Param: spec, Value: t[next:]}, nil
	}
}

// positional matches t against the first nameless declaration.
func (m *Matcher[ID]) positional(t string) (*Arg[ID], error) {
	spec := m.positionalSpec()
	if spec == nil {
		return nil, m.fail(diag.ErrInvalidArgument, t, 0, "")
	}
	return &Arg[ID]{Param: spec, Value: t}, nil
}

func (m *Matcher[ID]) findShort(c rune) *param.Spec[ID] {
	for i := range m.specs {
		if m.specs[i].Short == c {
			return &m.specs[i]
		}
	}
	return nil
}

func (m *Matcher[ID]) findLong(name string) *param.Spec[ID] {
	for i := range m.specs {
		if s := &m.specs[i]; s.Long != "" && s.Long == name {
			return s
		}
	}
	return nil
}

// positionalSpec locates and caches the first nameless declaration.
func (m *Matcher[ID]) positionalSpec() *param.Spec[ID] {
	if !m.posCached {
		m.posCached = true
		for i := range m.specs {
			if m.specs[i].Positional() {
				m.pos = &m.specs[i]
				break
			}
		}
	}
	return m.pos
}

// isSep reports whether s starts with an assignment separator.
func (m *Matcher[ID]) isSep(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	return strings.ContainsRune(m.seps, c)
}

// fail records the failure details in the diagnostic slot, if present,
// and returns the error kind unchanged.
func (m *Matcher[ID]) fail(err error, token string, short rune, long string) error {
	if m.d != nil {
		*m.d = diag.Diagnostic{Token: token, Short: short, Long: long}
	}
	return err
}
