package param

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse builds a Spec from a human-readable declaration string. The
// syntax mirrors the first column of a typical help message:
//
//	-h
//	-h, --help
//	--help
//	-o, --output <FILE>     Write the result to FILE.
//	-v, --verbose           Increase verbosity; may be repeated.
//	-D <KEY>...             Define KEY; may be repeated.
//	<PATH>...               Input files.
//
// A short name is introduced by a single dash, a long name by a double
// dash, and both may be combined separated by a comma. A trailing
// placeholder in angle brackets gives the parameter arity One; appending
// "..." to the placeholder gives it arity Many. A declaration consisting
// of a placeholder alone declares a positional parameter. Any remaining
// text is the description, returned alongside the Spec.
func Parse[ID any](id ID, decl string) (Spec[ID], string, error) {
	spec := Spec[ID]{ID: id}
	rest := strings.TrimSpace(decl)

	named := false
	for strings.HasPrefix(rest, "-") {
		if strings.HasPrefix(rest, "--") {
			name, tail := cutName(rest[2:])
			if name == "" {
				return spec, "", fmt.Errorf("param: missing long name in %q", decl)
			}
			if spec.Long != "" {
				return spec, "", fmt.Errorf("param: duplicate long name in %q", decl)
			}
			spec.Long = name
			rest = tail
		} else {
			name, tail := cutName(rest[1:])
			if c, size := utf8.DecodeRuneInString(name); size == 0 || size != len(name) {
				return spec, "", fmt.Errorf("param: short name in %q must be a single character", decl)
			} else if spec.Short != 0 {
				return spec, "", fmt.Errorf("param: duplicate short name in %q", decl)
			} else {
				spec.Short = c
			}
			rest = tail
		}
		named = true
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ","))
	}

	if strings.HasPrefix(rest, "<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return spec, "", fmt.Errorf("param: unterminated placeholder in %q", decl)
		}
		spec.Arity = One
		rest = rest[end+1:]
		if strings.HasPrefix(rest, "...") {
			spec.Arity = Many
			rest = rest[3:]
		}
	} else if !named {
		return spec, "", fmt.Errorf("param: %q declares neither a name nor a placeholder", decl)
	}

	if err := spec.Validate(); err != nil {
		return spec, "", fmt.Errorf("param: %q: %w", decl, err)
	}
	return spec, strings.TrimSpace(rest), nil
}

// MustParse is like Parse but panics on a malformed declaration. It is
// intended for static declaration lists where a syntax error is a
// programming mistake.
func MustParse[ID any](id ID, decl string) Spec[ID] {
	spec, _, err := Parse(id, decl)
	if err != nil {
		panic(err)
	}
	return spec
}

// cutName splits off a parameter name at the first comma, whitespace, or
// placeholder start.
func cutName(s string) (name, rest string) {
	if i := strings.IndexFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '<'
	}); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}
