// Package figure models the rendering backend's plot object: an ordered
// list of traces and one layout.
//
// The types mirror the plotly.js schema closely enough that
// [json.Marshal] of a [Figure] is the interchange format accepted by the
// backend. Encoding is deterministic: struct fields keep declaration order
// and every map is written with sorted keys.
package figure

import (
	"encoding/json"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// Figure is a render-ready plot.
type Figure struct {
	Data   []*Trace `json:"data"`
	Layout *Layout  `json:"layout"`
}

// New returns an empty figure with an empty layout.
func New() *Figure {
	return &Figure{Data: []*Trace{}, Layout: &Layout{}}
}

// Add appends traces to the figure.
func (f *Figure) Add(traces ...*Trace) {
	f.Data = append(f.Data, traces...)
}

// Family returns the addressing family of the figure: the family of its
// first trace, or FamilyCartesian for an empty figure.
func (f *Figure) Family() Family {
	if len(f.Data) == 0 {
		return FamilyCartesian
	}
	return f.Data[0].Family()
}

// Families returns the distinct families of the figure's traces in order.
func (f *Figure) Families() []Family {
	var out []Family
	seen := make(map[Family]bool)
	for _, t := range f.Data {
		fam := t.Family()
		if !seen[fam] {
			seen[fam] = true
			out = append(out, fam)
		}
	}
	return out
}

// Clone returns a deep copy of the figure.
func (f *Figure) Clone() (*Figure, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure")
	}
	out := &Figure{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode figure")
	}
	if out.Layout == nil {
		out.Layout = &Layout{}
	}
	return out, nil
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
