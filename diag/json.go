package diag

import (
	"errors"

	"github.com/goccy/go-json"
)

// payload is the wire shape of an encoded diagnostic.
type payload struct {
	Kind  string `json:"kind"`
	Token string `json:"token"`
	Short string `json:"short,omitempty"`
	Long  string `json:"long,omitempty"`
}

// JSON encodes the error kind and diagnostic as a machine-readable JSON
// object, suitable for editors and completion tooling that consume parse
// failures programmatically.
func JSON(err error, d *Diagnostic) ([]byte, error) {
	p := payload{
		Kind:  kind(err),
		Token: d.Token,
		Long:  d.Long,
	}
	if d.Short != 0 {
		p.Short = string(d.Short)
	}
	return json.Marshal(p)
}

func kind(err error) string {
	switch {
	case errors.Is(err, ErrDoesntTakeValue):
		return "doesnt_take_value"
	case errors.Is(err, ErrMissingValue):
		return "missing_value"
	default:
		return "invalid_argument"
	}
}
