package args

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"golang.org/x/term"
)

// Usage generates a formatted help message, detailing all registered
// parameters, their types, descriptions, and default values. When stdout
// is a terminal, descriptions are soft-wrapped to its width.
func (s *Set) Usage() string {
	var b strings.Builder
	line := fmt.Sprintf("Usage: %s [OPTION]...", s.cmd)
	if i := s.positionalIndex(); i >= 0 {
		if s.fields[i].val.Kind() == reflect.Slice {
			line += " [ARG]..."
		} else {
			line += " [ARG]"
		}
	}
	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "       %s --help\n\n", s.cmd)
	if s.sum != "" {
		fmt.Fprintf(&b, "%s\n\n", s.sum)
	}
	fmt.Fprintf(&b, "Options:\n")

	type row struct {
		names string
		desc  string
	}
	var rows []row
	offset := 0
	add := func(names, desc string) {
		if len(names) > offset {
			offset = len(names)
		}
		rows = append(rows, row{names, desc})
	}
	for i, f := range s.fields {
		spec := s.specs[i]
		if spec.Positional() {
			continue
		}
		desc := f.desc
		if def := formatDefault(f); def != "" {
			desc += " " + def
		}
		add(s.format(i), desc)
	}
	add("    --help", "Display this help message and exit")

	avail := width() - offset - 4
	for _, r := range rows {
		space := strings.Repeat(" ", offset-len(r.names)+2)
		lines := wrap(r.desc, avail)
		fmt.Fprintf(&b, "  %s%s%s\n", r.names, space, lines[0])
		indent := strings.Repeat(" ", offset+4)
		for _, l := range lines[1:] {
			fmt.Fprintf(&b, "%s%s\n", indent, l)
		}
	}
	return b.String()
}

// format builds the left-hand side of a help message line.
// Example: "-p, --port [int]"
func (s *Set) format(i int) string {
	spec := s.specs[i]
	var out string
	if spec.Short != 0 {
		out = "-" + string(spec.Short) + ", "
	} else {
		out = "    "
	}
	if spec.Long != "" {
		out += "--" + spec.Long
	} else {
		out = strings.TrimSuffix(out, ", ")
	}
	if kind := s.fields[i].val.Kind(); kind == reflect.Slice {
		out += fmt.Sprintf(" [%s...]", s.fields[i].val.Type().Elem())
	} else if kind != reflect.Bool {
		out += fmt.Sprintf(" [%s]", s.fields[i].val.Type())
	}
	return out
}

// formatDefault creates the default value string, like "(default: 8080)".
// It returns an empty string for zero-value defaults to keep the help
// concise.
func formatDefault(f *field) string {
	if f.def == nil {
		return ""
	}
	val := reflect.ValueOf(f.def)
	// Don't show default for zero-values.
	if val.IsZero() || (val.Kind() == reflect.Slice && val.Len() == 0) {
		return ""
	}
	return fmt.Sprintf("(default: %v)", f.def)
}

// width returns the column count of the attached terminal, or 0 when
// stdout is not a terminal.
func width() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// wrap splits text into lines of at most limit characters, breaking at
// spaces. A non-positive limit disables wrapping.
func wrap(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var line string
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= limit:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// positionalIndex returns the field index of the first positional
// parameter, or -1 if none is registered.
func (s *Set) positionalIndex() int {
	for i := range s.specs {
		if s.specs[i].Positional() {
			return i
		}
	}
	return -1
}
