// Package source abstracts the supply of raw command-line tokens. A
// Source yields a finite, forward-only sequence of argument strings; it
// can be restarted only by constructing a new one.
//
// Matchers consume any type satisfying the Source interface, so the same
// parsing code works against OS process arguments, fixed slices in tests,
// or arbitrary string iterators.
package source

import (
	"iter"
	"os"
)

// Source produces raw argument tokens one at a time. Next reports false
// once the sequence is exhausted; exhaustion must be permanent, so that
// repeated calls after the end keep reporting false.
type Source interface {
	Next() (string, bool)
}

// Func adapts an ordinary function to a Source.
type Func func() (string, bool)

// Next calls f.
func (f Func) Next() (string, bool) { return f() }

type slice struct {
	args []string
	next int
}

// FromSlice returns a Source yielding the given tokens in order. The
// slice is not copied; the caller must not mutate it while parsing.
func FromSlice(args []string) Source {
	return &slice{args: args}
}

func (s *slice) Next() (string, bool) {
	if s.next >= len(s.args) {
		return "", false
	}
	arg := s.args[s.next]
	s.next++
	return arg, true
}

// FromArgs returns a Source over the process arguments, excluding the
// program name.
func FromArgs() Source {
	return FromSlice(os.Args[1:])
}

// FromSeq returns a Source draining the given iterator. The iterator is
// pulled lazily, one token per Next call, and released once exhausted.
func FromSeq(seq iter.Seq[string]) Source {
	next, stop := iter.Pull(seq)
	return Func(func() (string, bool) {
		arg, ok := next()
		if !ok {
			stop()
		}
		return arg, ok
	})
}
