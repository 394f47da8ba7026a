package args

import (
	"reflect"

	"github.com/deep-rent/args/param"
	"github.com/goccy/go-json"
)

// description is the wire shape of a self-describing parameter set.
type description struct {
	Command string  `json:"command"`
	Summary string  `json:"summary,omitempty"`
	Params  []entry `json:"params"`
}

type entry struct {
	Short      string `json:"short,omitempty"`
	Long       string `json:"long,omitempty"`
	Type       string `json:"type"`
	Repeats    bool   `json:"repeats,omitempty"`
	Positional bool   `json:"positional,omitempty"`
	Default    any    `json:"default,omitempty"`
	Desc       string `json:"description,omitempty"`
}

// Describe returns a JSON description of the registered parameters. The
// output is stable in declaration order and intended for shell completion
// generators and similar tooling that introspect a command's interface.
func (s *Set) Describe() ([]byte, error) {
	d := description{
		Command: s.cmd,
		Summary: s.sum,
		Params:  make([]entry, 0, len(s.fields)),
	}
	for i, f := range s.fields {
		spec := s.specs[i]
		e := entry{
			Long:       spec.Long,
			Type:       f.val.Type().String(),
			Repeats:    spec.Arity == param.Many,
			Positional: spec.Positional(),
			Desc:       f.desc,
		}
		if spec.Short != 0 {
			e.Short = string(spec.Short)
		}
		if def := reflect.ValueOf(f.def); f.def != nil && !def.IsZero() {
			e.Default = f.def
		}
		d.Params = append(d.Params, e)
	}
	return json.Marshal(d)
}
