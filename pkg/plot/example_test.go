package plot_test

import (
	"encoding/json"
	"fmt"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/plot"
)

func ExampleBuild() {
	tab := new(table.Builder).
		Add("species", []string{"A", "B", "A"}).
		Add("row", []float64{0, 1, 2}).
		Add("value", []float64{1, 2, 3}).
		Done()

	fig, err := plot.Build(tab, &plot.Scatter{
		X:        "row",
		Y:        "value",
		Grouping: plot.Grouping{Group: "species"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, tr := range fig.Data {
		y, _ := json.Marshal(tr.Y)
		fmt.Println(tr.Name, string(y))
	}
	// Output:
	// A [1,3]
	// B [2]
}

func ExampleBuild_missingColumn() {
	tab := new(table.Builder).Add("value", []float64{1, 2, 3}).Done()

	_, err := plot.Build(tab, &plot.Scatter{X: "row", Y: "value"})
	fmt.Println(errors.GetCode(err))
	// Output: COLUMN_NOT_FOUND
}

func ExampleDecode() {
	spec, err := plot.Decode(plot.KindPie, []byte(`{"labels": "species", "hole": 0.4}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(spec.Kind())
	// Output: pie
}
