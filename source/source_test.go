package source_test

import (
	"slices"
	"testing"

	"github.com/deep-rent/args/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, src source.Source) []string {
	t.Helper()
	var out []string
	for {
		arg, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, arg)
	}
}

func TestFromSlice(t *testing.T) {
	src := source.FromSlice([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, drain(t, src))

	t.Run("exhaustion is permanent", func(t *testing.T) {
		for range 3 {
			_, ok := src.Next()
			assert.False(t, ok)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := source.FromSlice(nil).Next()
		assert.False(t, ok)
	})
}

func TestFromSeq(t *testing.T) {
	args := []string{"x", "y"}
	src := source.FromSeq(slices.Values(args))
	assert.Equal(t, args, drain(t, src))
	_, ok := src.Next()
	assert.False(t, ok)
}

func TestFunc(t *testing.T) {
	n := 0
	src := source.Func(func() (string, bool) {
		n++
		return "tok", n <= 2
	})
	got := drain(t, src)
	require.Equal(t, []string{"tok", "tok"}, got)
}
