// Package collect folds the event stream of a streaming matcher into
// aggregate buckets: occurrence counts for flags, a last-wins value per
// single-value option, ordered value lists per many-valued option, and an
// ordered list of positional values.
package collect

import (
	"github.com/deep-rent/args/match"
	"github.com/deep-rent/args/param"
)

// Result holds the folded outcome of a complete parse. The type
// parameter ID must be comparable so matches can be bucketed by their
// declaration tags.
type Result[ID comparable] struct {
	// Flags counts occurrences per flag declaration. Absent flags have
	// no entry.
	Flags map[ID]int
	// Options holds the last value seen per single-value option.
	Options map[ID]string
	// Multi accumulates values per many-valued option in encounter
	// order.
	Multi map[ID][]string
	// Positionals lists all positional values in encounter order.
	Positionals []string
}

// Flag reports whether the flag with the given tag occurred at least
// once.
func (r Result[ID]) Flag(id ID) bool { return r.Flags[id] > 0 }

// Option returns the last value of the single-value option with the
// given tag, and whether it occurred at all.
func (r Result[ID]) Option(id ID) (string, bool) {
	v, ok := r.Options[id]
	return v, ok
}

// All drives m to exhaustion and folds every event into a Result. On the
// first error from the matcher, aggregation stops and the error is
// propagated unchanged; any partially filled buckets are discarded with
// the returned zero Result.
func All[ID comparable](m *match.Matcher[ID]) (Result[ID], error) {
	res := Result[ID]{
		Flags:   make(map[ID]int),
		Options: make(map[ID]string),
		Multi:   make(map[ID][]string),
	}
	for {
		arg, err := m.Next()
		if err != nil {
			return Result[ID]{}, err
		}
		if arg == nil {
			return res, nil
		}
		p := arg.Param
		switch {
		case p.Positional():
			res.Positionals = append(res.Positionals, arg.Value)
		case p.Arity == param.None:
			res.Flags[p.ID]++
		case p.Arity == param.Many:
			res.Multi[p.ID] = append(res.Multi[p.ID], arg.Value)
		default:
			res.Options[p.ID] = arg.Value
		}
	}
}
