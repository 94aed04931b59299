package render_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/render"
)

func ExampleInline() {
	fig := figure.New()
	fig.Add(&figure.Trace{Type: "bar", Name: "A", X: []string{"x", "y"}, Y: []float64{1, 2}})

	a, _ := render.Inline(fig)
	b, _ := render.Inline(fig)
	fmt.Println(bytes.Equal(a, b))

	frag, _ := render.Inline(fig, render.WithDivID("penguins"))
	fmt.Println(strings.HasPrefix(string(frag), `<div id="penguins"`))
	// Output:
	// true
	// true
}

func ExampleParseFormat() {
	for _, s := range []string{"html", ".JPG", "gif"} {
		f, err := render.ParseFormat(s)
		fmt.Printf("%q static=%v err=%v\n", f, f.Static(), err != nil)
	}
	// Output:
	// "html" static=false err=false
	// "jpeg" static=true err=false
	// "" static=false err=true
}
