package args

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// fromEnv fills parameters that were absent from the command line with
// values from the environment. Only long-named, non-positional parameters
// participate; the variable name is the configured prefix joined with the
// long name converted to uppercase SNAKE_CASE.
func (s *Set) fromEnv(seen []bool) error {
	for i, f := range s.fields {
		spec := s.specs[i]
		if seen[i] || spec.Long == "" || f.val.Kind() == reflect.Slice {
			continue
		}
		name := s.prefix + "_" + envName(spec.Long)
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := set(f.val, value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, name, err)
		}
	}
	return nil
}

// envName converts a kebab-case long name to an uppercase SNAKE_CASE
// environment variable segment, e.g. "log-level" to "LOG_LEVEL".
func envName(long string) string {
	return strings.ToUpper(strings.ReplaceAll(long, "-", "_"))
}
