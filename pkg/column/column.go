// Package column adapts a columnar data table to the typed, nullable column
// views the plot builders consume.
//
// The table itself is borrowed and never mutated. Any value satisfying
// [Table] works; a go-gg *table.Table satisfies it directly:
//
//	tab := new(table.Builder).
//		Add("species", []string{"A", "B", "A"}).
//		Add("value", []float64{1, 2, 3}).
//		Done()
//
//	col, err := column.Extract(tab, "value", column.Numeric)
//
// Nulls are first-class: a nil pointer, a nil interface, a NaN or infinite
// float or an empty string cell all read as null. Markers such as "NA" or
// "null" read as null only where a numeric, boolean or temporal value is
// expected; in a categorical column they are ordinary labels. A null in a plotted column becomes a
// gap in the trace rather than a build failure.
package column

import (
	"strconv"
	"time"

	"github.com/aclements/go-gg/table"
)

// Table is the read-only table contract the builders depend on.
type Table interface {
	// Len returns the number of rows.
	Len() int
	// Columns returns the column names in table order.
	Columns() []string
	// Column returns the backing slice of the named column, or nil.
	Column(name string) table.Slice
}

// Kind is the semantic type a column is read as.
type Kind int

const (
	Numeric Kind = iota + 1
	Categorical
	Boolean
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Boolean:
		return "boolean"
	case Temporal:
		return "temporal"
	}
	return "unknown"
}

// AxisType returns the axis type a column of this kind drives by default.
func (k Kind) AxisType() string {
	switch k {
	case Numeric:
		return "linear"
	case Temporal:
		return "date"
	}
	return "category"
}

// DateLayout is the layout temporal values are emitted with.
const DateLayout = "2006-01-02 15:04:05"

// Column is a typed, nullable view of one table column.
type Column struct {
	Name string
	Kind Kind

	valid []bool
	num   []float64
	str   []string
	flag  []bool
	tm    []time.Time
}

func newColumn(name string, kind Kind, n int) *Column {
	c := &Column{Name: name, Kind: kind, valid: make([]bool, n)}
	switch kind {
	case Numeric:
		c.num = make([]float64, n)
	case Categorical:
		c.str = make([]string, n)
	case Boolean:
		c.flag = make([]bool, n)
	case Temporal:
		c.tm = make([]time.Time, n)
	}
	return c
}

// Len returns the number of rows, nulls included.
func (c *Column) Len() int { return len(c.valid) }

// Valid reports whether row i holds a non-null value.
func (c *Column) Valid(i int) bool { return c.valid[i] }

// NullCount returns the number of null rows.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Float returns the numeric value of row i.
func (c *Column) Float(i int) (float64, bool) {
	if c.Kind != Numeric || !c.valid[i] {
		return 0, false
	}
	return c.num[i], true
}

// Bool returns the boolean value of row i.
func (c *Column) Bool(i int) (bool, bool) {
	if c.Kind != Boolean || !c.valid[i] {
		return false, false
	}
	return c.flag[i], true
}

// Time returns the temporal value of row i.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.Kind != Temporal || !c.valid[i] {
		return time.Time{}, false
	}
	return c.tm[i], true
}

// String returns the display form of row i for any kind.
func (c *Column) String(i int) (string, bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.Kind {
	case Numeric:
		return strconv.FormatFloat(c.num[i], 'f', -1, 64), true
	case Boolean:
		return strconv.FormatBool(c.flag[i]), true
	case Temporal:
		return formatTime(c.tm[i]), true
	}
	return c.str[i], true
}

// Floats returns the non-null numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.valid))
	for i := range c.valid {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// Values returns the column as a JSON-ready sequence. Nulls are nil,
// numeric values are float64, booleans are bool and everything else is a
// string. Temporal values use DateLayout (or just the date at midnight).
func (c *Column) Values() []any {
	out := make([]any, len(c.valid))
	for i := range c.valid {
		if !c.valid[i] {
			continue
		}
		switch c.Kind {
		case Numeric:
			out[i] = c.num[i]
		case Boolean:
			out[i] = c.flag[i]
		default:
			out[i], _ = c.String(i)
		}
	}
	return out
}

// Select returns a new column holding rows in the given order.
func (c *Column) Select(rows []int) *Column {
	out := newColumn(c.Name, c.Kind, len(rows))
	for j, i := range rows {
		out.valid[j] = c.valid[i]
		switch c.Kind {
		case Numeric:
			out.num[j] = c.num[i]
		case Categorical:
			out.str[j] = c.str[i]
		case Boolean:
			out.flag[j] = c.flag[i]
		case Temporal:
			out.tm[j] = c.tm[i]
		}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(DateLayout)
}
