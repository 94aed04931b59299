// Package partition splits table rows into ordered (facet, group) subsets.
//
// Keys keep first-occurrence order in the source table unless the caller
// supplies an explicit order. With both a facet and a group column only the
// combinations that actually occur are materialized. A null key forms its
// own partition labeled [NullLabel]; a cell holding the text of NullLabel
// belongs to that partition too.
package partition

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
)

// NullLabel labels the partition of rows whose key is null.
const NullLabel = "(null)"

// Key is one distinct value of a grouping or facet column.
type Key struct {
	Label string
	Null  bool
}

// Part is one (facet, group) subset of rows.
type Part struct {
	Facet      Key
	Group      Key
	FacetIndex int   // position of Facet in Result.Facets
	GroupIndex int   // position of Group in Result.Groups
	Rows       []int // row indices in table order
}

// Options selects the partitioning columns and their ordering.
type Options struct {
	Group      string   // grouping column; empty means no grouping
	Facet      string   // facet column; empty means no faceting
	GroupOrder []string // explicit group order; unlisted keys follow in first-seen order
	FacetOrder []string // explicit facet order; unlisted keys follow in first-seen order
}

// Result is the ordered partitioning of a table.
type Result struct {
	Parts  []Part // facet-major, then group order
	Facets []Key  // distinct facet keys in order; one empty key without faceting
	Groups []Key  // distinct group keys in order; one empty key without grouping
}

// Split partitions the rows of t.
//
// Without columns, Split returns one part holding every row. It fails with
// EMPTY_GROUP or EMPTY_FACET when a requested column yields no non-null rows
// or an explicit order names a key that never occurs.
func Split(t column.Table, opts Options) (*Result, error) {
	n := t.Len()

	facetOf, facets, err := keys(t, opts.Facet, opts.FacetOrder, errors.ErrCodeEmptyFacet)
	if err != nil {
		return nil, err
	}
	groupOf, groups, err := keys(t, opts.Group, opts.GroupOrder, errors.ErrCodeEmptyGroup)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "table has no rows")
	}

	buckets := make([][]int, len(facets)*len(groups))
	for row := 0; row < n; row++ {
		b := facetOf[row]*len(groups) + groupOf[row]
		buckets[b] = append(buckets[b], row)
	}

	res := &Result{Facets: facets, Groups: groups}
	for fi := range facets {
		for gi := range groups {
			rows := buckets[fi*len(groups)+gi]
			if len(rows) == 0 {
				continue
			}
			res.Parts = append(res.Parts, Part{
				Facet:      facets[fi],
				Group:      groups[gi],
				FacetIndex: fi,
				GroupIndex: gi,
				Rows:       rows,
			})
		}
	}
	return res, nil
}

// ByFacet returns the parts of each facet, in facet order.
func (r *Result) ByFacet() [][]Part {
	out := make([][]Part, len(r.Facets))
	for _, p := range r.Parts {
		out[p.FacetIndex] = append(out[p.FacetIndex], p)
	}
	return out
}

// Grouped reports whether the result was split by a group column.
func (r *Result) Grouped() bool {
	return len(r.Groups) > 1 || (len(r.Groups) == 1 && r.Groups[0] != Key{})
}

// Faceted reports whether the result was split by a facet column.
func (r *Result) Faceted() bool {
	return len(r.Facets) > 1 || (len(r.Facets) == 1 && r.Facets[0] != Key{})
}

// keys assigns every row the index of its key for column name. An empty
// name assigns every row to a single empty key.
func keys(t column.Table, name string, order []string, empty errors.Code) ([]int, []Key, error) {
	n := t.Len()
	idx := make([]int, n)
	if name == "" {
		return idx, []Key{{}}, nil
	}

	col, err := column.Extract(t, name, column.Categorical)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[Key]int)
	var firstSeen []Key
	for i := 0; i < n; i++ {
		k := keyOf(col, i)
		if _, ok := seen[k]; !ok {
			seen[k] = len(firstSeen)
			firstSeen = append(firstSeen, k)
		}
	}
	if len(firstSeen) == 1 && firstSeen[0].Null {
		return nil, nil, &errors.Error{
			Code:    empty,
			Message: "column " + quote(name) + " has no non-null values",
			Column:  name,
		}
	}

	ordered := firstSeen
	if len(order) > 0 {
		ordered = make([]Key, 0, len(firstSeen))
		listed := make(map[Key]bool, len(order))
		for _, label := range order {
			k := Key{Label: label}
			if label == NullLabel {
				k.Null = true
			}
			if _, ok := seen[k]; !ok {
				return nil, nil, &errors.Error{
					Code:    empty,
					Message: "no rows where " + quote(name) + " is " + quote(label),
					Column:  name,
				}
			}
			if !listed[k] {
				listed[k] = true
				ordered = append(ordered, k)
			}
		}
		for _, k := range firstSeen {
			if !listed[k] {
				ordered = append(ordered, k)
			}
		}
	}

	pos := make(map[Key]int, len(ordered))
	for i, k := range ordered {
		pos[k] = i
	}
	for i := 0; i < n; i++ {
		k := keyOf(col, i)
		idx[i] = pos[k]
	}
	return idx, ordered, nil
}

// keyOf returns the key of row i. A cell spelled like NullLabel joins the
// null partition so the legend never shows two "(null)" entries.
func keyOf(col *column.Column, i int) Key {
	if s, ok := col.String(i); ok && s != NullLabel {
		return Key{Label: s}
	}
	return Key{Label: NullLabel, Null: true}
}

func quote(s string) string {
	return `"` + s + `"`
}
