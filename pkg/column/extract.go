package column

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/generic/slice"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// nullStrings are string cells read as null when a numeric, boolean or
// temporal value is expected.
var nullStrings = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// timeLayouts are tried in order when reading temporal values from strings.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
}

var timeType = reflect.TypeOf(time.Time{})

// Extract resolves name against t and reads it as kind.
//
// It fails with COLUMN_NOT_FOUND when t has no such column and with
// TYPE_MISMATCH when a non-null cell cannot be coerced to kind (for example a
// string column with non-numeric content requested as Numeric). The returned
// column always has t.Len() rows.
func Extract(t Table, name string, kind Kind) (*Column, error) {
	rv, err := lookup(t, name)
	if err != nil {
		return nil, err
	}
	if kind == Numeric {
		if c, ok := fastNumeric(name, rv); ok {
			return c, nil
		}
	}

	n := rv.Len()
	c := newColumn(name, kind, n)
	for i := 0; i < n; i++ {
		v := scalar(rv.Index(i))
		if v == nil {
			continue
		}
		if err := c.set(i, v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Infer reads name with the kind its content naturally has: numbers are
// Numeric, booleans Boolean, times Temporal. String columns are Numeric when
// every non-null cell parses as a number, Temporal when every cell parses as
// a date, and Categorical otherwise.
func Infer(t Table, name string) (*Column, error) {
	rv, err := lookup(t, name)
	if err != nil {
		return nil, err
	}
	return Extract(t, name, inferKind(rv))
}

// Has reports whether t has a column with the given name.
func Has(t Table, name string) bool {
	for _, c := range t.Columns() {
		if c == name {
			return true
		}
	}
	return false
}

func lookup(t Table, name string) (reflect.Value, error) {
	if !Has(t, name) {
		return reflect.Value{}, errors.ColumnNotFound(name)
	}
	rv := reflect.ValueOf(t.Column(name))
	if rv.Kind() != reflect.Slice {
		return reflect.Value{}, errors.TypeMismatch(name, "slice", rv.Kind().String())
	}
	return rv, nil
}

// fastNumeric converts plain numeric slices in one pass.
func fastNumeric(name string, rv reflect.Value) (*Column, bool) {
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, false
	}
	var fs []float64
	slice.Convert(&fs, rv.Interface())
	c := &Column{Name: name, Kind: Numeric, num: fs, valid: make([]bool, len(fs))}
	for i, f := range fs {
		c.valid[i] = finite(f)
	}
	return c, true
}

// scalar normalizes one cell to nil, float64, string, bool, time.Time or,
// for anything else, its formatted string.
func scalar(v reflect.Value) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if !finite(f) {
			return nil
		}
		return f
	case reflect.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return nil
		}
		return s
	case reflect.Bool:
		return v.Bool()
	}
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return nil
		}
		return t
	}
	return fmt.Sprint(v.Interface())
}

// finite reports whether f can be plotted. NaN and ±Inf read as null.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (c *Column) set(i int, v any) error {
	if s, ok := v.(string); ok && c.Kind != Categorical && nullStrings[s] {
		return nil
	}
	switch c.Kind {
	case Numeric:
		switch x := v.(type) {
		case float64:
			c.num[i] = x
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return c.mismatch(i, v)
			}
			if !finite(f) {
				return nil
			}
			c.num[i] = f
		default:
			return c.mismatch(i, v)
		}
	case Categorical:
		switch x := v.(type) {
		case float64:
			c.str[i] = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			c.str[i] = strconv.FormatBool(x)
		case time.Time:
			c.str[i] = formatTime(x)
		case string:
			c.str[i] = x
		}
	case Boolean:
		switch x := v.(type) {
		case bool:
			c.flag[i] = x
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return c.mismatch(i, v)
			}
			c.flag[i] = b
		default:
			return c.mismatch(i, v)
		}
	case Temporal:
		switch x := v.(type) {
		case time.Time:
			c.tm[i] = x
		case string:
			t, ok := parseTime(x)
			if !ok {
				return c.mismatch(i, v)
			}
			c.tm[i] = t
		default:
			return c.mismatch(i, v)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown column kind %d", c.Kind)
	}
	c.valid[i] = true
	return nil
}

func (c *Column) mismatch(i int, v any) error {
	got := fmt.Sprintf("%T value %q at row %d", v, fmt.Sprint(v), i)
	return errors.TypeMismatch(c.Name, c.Kind.String(), got)
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func inferKind(rv reflect.Value) Kind {
	var numeric, boolean, temporal, text, numText, timeText int
	for i := 0; i < rv.Len(); i++ {
		switch x := scalar(rv.Index(i)).(type) {
		case nil:
		case float64:
			numeric++
		case bool:
			boolean++
		case time.Time:
			temporal++
		case string:
			if nullStrings[x] {
				continue
			}
			text++
			if _, err := strconv.ParseFloat(x, 64); err == nil {
				numText++
			} else if _, ok := parseTime(x); ok {
				timeText++
			}
		}
	}
	total := numeric + boolean + temporal + text
	switch {
	case total == 0:
		return Categorical
	case numeric+numText == total:
		return Numeric
	case boolean == total:
		return Boolean
	case temporal+timeText == total && timeText+temporal > 0:
		return Temporal
	}
	return Categorical
}
