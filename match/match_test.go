package match_test

import (
	"fmt"
	"testing"

	"github.com/deep-rent/args/diag"
	"github.com/deep-rent/args/match"
	"github.com/deep-rent/args/param"
	"github.com/deep-rent/args/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// event is a flattened match for easy comparison in tests.
type event struct {
	id    string
	value string
}

// specs is the declaration list shared by most tests below.
var specs = []param.Spec[string]{
	param.Flag("a", 'a', "aa"),
	param.Flag("b", 'b', "bb"),
	param.Option("c", 'c', "cc", param.One),
	param.Option("d", 'd', "dd", param.Many),
	param.Positional("p"),
}

func drain(t *testing.T, m *match.Matcher[string]) ([]event, error) {
	t.Helper()
	var events []event
	for {
		arg, err := m.Next()
		if err != nil {
			return events, err
		}
		if arg == nil {
			return events, nil
		}
		events = append(events, event{id: arg.Param.ID, value: arg.Value})
	}
}

func TestMatcher_Chaining(t *testing.T) {
	m := match.New(specs, source.FromSlice([]string{"-abc", "0"}))
	events, err := drain(t, m)
	require.NoError(t, err)
	assert.Equal(t, []event{{"a", ""}, {"b", ""}, {"c", "0"}}, events)
}

func TestMatcher_ValueForms(t *testing.T) {
	tests := [][]string{
		{"-c", "0"},
		{"-c=0"},
		{"-c0"},
		{"--cc", "0"},
		{"--cc=0"},
	}
	for _, argv := range tests {
		t.Run(fmt.Sprintf("%v", argv), func(t *testing.T) {
			m := match.New(specs, source.FromSlice(argv))
			events, err := drain(t, m)
			require.NoError(t, err)
			assert.Equal(t, []event{{"c", "0"}}, events)
		})
	}
}

func TestMatcher_ChainedValueEndsChain(t *testing.T) {
	// A value-taking parameter consumes the rest of the cluster, even if
	// the remainder spells further flag names.
	m := match.New(specs, source.FromSlice([]string{"-acb"}))
	events, err := drain(t, m)
	require.NoError(t, err)
	assert.Equal(t, []event{{"a", ""}, {"c", "b"}}, events)
}

func TestMatcher_Positionals(t *testing.T) {
	t.Run("plain token", func(t *testing.T) {
		m := match.New(specs, source.FromSlice([]string{"something"}))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Equal(t, []event{{"p", "something"}}, events)
	})

	t.Run("lone dash", func(t *testing.T) {
		m := match.New(specs, source.FromSlice([]string{"-"}))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Equal(t, []event{{"p", "-"}}, events)
	})

	t.Run("escape", func(t *testing.T) {
		m := match.New(specs, source.FromSlice([]string{"-a", "--", "-a"}))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Equal(t, []event{{"a", ""}, {"p", "-a"}}, events)
	})

	t.Run("escape with nothing after", func(t *testing.T) {
		m := match.New(specs, source.FromSlice([]string{"--"}))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("everything after escape is positional", func(t *testing.T) {
		m := match.New(specs, source.FromSlice([]string{"--", "--cc=1", "-b", "x"}))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Equal(t, []event{{"p", "--cc=1"}, {"p", "-b"}, {"p", "x"}}, events)
	})
}

func TestMatcher_Exhaustion(t *testing.T) {
	m := match.New(specs, source.FromSlice(nil))
	for range 3 {
		arg, err := m.Next()
		require.NoError(t, err)
		assert.Nil(t, arg)
	}
}

func TestMatcher_Errors(t *testing.T) {
	type test struct {
		name    string
		argv    []string
		wantErr error
		want    diag.Diagnostic
	}
	tests := []test{
		{
			name:    "unknown long name",
			argv:    []string{"--zz"},
			wantErr: diag.ErrInvalidArgument,
			want:    diag.Diagnostic{Token: "--zz", Long: "zz"},
		},
		{
			name:    "unknown short name",
			argv:    []string{"-x"},
			wantErr: diag.ErrInvalidArgument,
			want:    diag.Diagnostic{Token: "-x", Short: 'x'},
		},
		{
			name:    "unknown short name in cluster",
			argv:    []string{"-ax"},
			wantErr: diag.ErrInvalidArgument,
			want:    diag.Diagnostic{Token: "-ax", Short: 'x'},
		},
		{
			name:    "inline value for long flag",
			argv:    []string{"--aa=1"},
			wantErr: diag.ErrDoesntTakeValue,
			want:    diag.Diagnostic{Token: "--aa=1", Long: "aa"},
		},
		{
			name:    "inline value for short flag",
			argv:    []string{"-a=1"},
			wantErr: diag.ErrDoesntTakeValue,
			want:    diag.Diagnostic{Token: "-a=1", Short: 'a'},
		},
		{
			name:    "missing value for short option",
			argv:    []string{"-c"},
			wantErr: diag.ErrMissingValue,
			want:    diag.Diagnostic{Token: "-c", Short: 'c'},
		},
		{
			name:    "missing value for long option",
			argv:    []string{"--cc"},
			wantErr: diag.ErrMissingValue,
			want:    diag.Diagnostic{Token: "--cc", Long: "cc"},
		},
		{
			name:    "missing value at end of cluster",
			argv:    []string{"-ac"},
			wantErr: diag.ErrMissingValue,
			want:    diag.Diagnostic{Token: "-ac", Short: 'c'},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d diag.Diagnostic
			m := match.New(specs, source.FromSlice(tc.argv), match.WithDiagnostic(&d))
			_, err := drain(t, m)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.want, d)
		})
	}
}

func TestMatcher_ErrorRendering(t *testing.T) {
	var d diag.Diagnostic
	m := match.New(specs, source.FromSlice([]string{"--zz"}), match.WithDiagnostic(&d))
	_, err := m.Next()
	require.ErrorIs(t, err, diag.ErrInvalidArgument)
	assert.Equal(t, "Invalid argument '--zz'\n", diag.Report(err, &d))
}

func TestMatcher_NoPositionalDeclared(t *testing.T) {
	flagsOnly := []param.Spec[string]{param.Flag("a", 'a', "aa")}
	var d diag.Diagnostic
	m := match.New(flagsOnly, source.FromSlice([]string{"stray"}), match.WithDiagnostic(&d))
	_, err := m.Next()
	require.ErrorIs(t, err, diag.ErrInvalidArgument)
	assert.Equal(t, diag.Diagnostic{Token: "stray"}, d)
	assert.Equal(t, "Invalid argument 'stray'\n", diag.Report(err, &d))
}

func TestMatcher_ResumeAfterError(t *testing.T) {
	// An abandoned cluster is not retained across an error; the next call
	// resumes at the next raw token.
	m := match.New(specs, source.FromSlice([]string{"-xa", "-b"}))
	_, err := m.Next()
	require.ErrorIs(t, err, diag.ErrInvalidArgument)

	events, err := drain(t, m)
	require.NoError(t, err)
	assert.Equal(t, []event{{"b", ""}}, events)
}

func TestMatcher_Separators(t *testing.T) {
	t.Run("custom set", func(t *testing.T) {
		argv := []string{"-c:0", "--cc:1"}
		m := match.New(specs, source.FromSlice(argv), match.WithSeparators(":="))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Equal(t, []event{{"c", "0"}, {"c", "1"}}, events)
	})

	t.Run("splits at first separator only", func(t *testing.T) {
		m := match.New(specs, source.FromSlice([]string{"-c=a=b"}))
		events, err := drain(t, m)
		require.NoError(t, err)
		assert.Equal(t, []event{{"c", "a=b"}}, events)
	})
}

func TestMatcher_FirstPositionalWins(t *testing.T) {
	// Only the first nameless declaration is ever matched.
	double := []param.Spec[string]{
		param.Positional("first"),
		param.Positional("second"),
	}
	m := match.New(double, source.FromSlice([]string{"x", "y"}))
	events, err := drain(t, m)
	require.NoError(t, err)
	assert.Equal(t, []event{{"first", "x"}, {"first", "y"}}, events)
}

func TestMatcher_Concurrent(t *testing.T) {
	// A declaration list is read-only and may back any number of matcher
	// instances running in parallel, e.g. over subcommand sub-ranges.
	ranges := [][]string{
		{"-a", "-c", "0"},
		{"--bb", "--dd", "x", "--dd=y"},
		{"-abc0", "rest"},
		{"--", "-a", "-b"},
	}
	counts := make([]int, len(ranges))

	var g errgroup.Group
	for i, argv := range ranges {
		g.Go(func() error {
			m := match.New(specs, source.FromSlice(argv))
			for {
				arg, err := m.Next()
				if err != nil {
					return err
				}
				if arg == nil {
					return nil
				}
				counts[i]++
			}
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, []int{2, 3, 4, 2}, counts)
}
