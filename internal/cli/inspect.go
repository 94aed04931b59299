package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/source"
)

// columnSummary describes one column of a table.
type columnSummary struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Nulls    int      `json:"nulls"`
	Distinct int      `json:"distinct"`
	Mean     *float64 `json:"mean,omitempty"`
	StdDev   *float64 `json:"stddev,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.csv>",
		Short: "Summarize the columns of a CSV file",
		Long: `Inspect reads a CSV file the way plot documents do and prints, per column,
the kind it is read as, its null and distinct counts and, for numeric
columns, summary statistics.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("csv"),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			tab, err := source.LoadCSV(args[0])
			if err != nil {
				return err
			}
			summaries, err := summarize(tab)
			if err != nil {
				return err
			}
			prog.done("inspected", "rows", tab.Len(), "columns", len(summaries))

			if asJSON {
				data, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}
			printKeyValue("File", args[0])
			printKeyValue("Rows", strconv.Itoa(tab.Len()))
			printNewline()
			fmt.Fprintln(stdout, summaryTable(summaries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

// summarize infers every column of t and collects its statistics.
func summarize(t column.Table) ([]columnSummary, error) {
	out := make([]columnSummary, 0, len(t.Columns()))
	for _, name := range t.Columns() {
		col, err := column.Infer(t, name)
		if err != nil {
			return nil, err
		}
		s := columnSummary{
			Name:     name,
			Kind:     col.Kind.String(),
			Nulls:    col.NullCount(),
			Distinct: distinct(col),
		}
		if col.Kind == column.Numeric {
			if xs := col.Floats(); len(xs) > 0 {
				sample := stats.Sample{Xs: xs}
				lo, hi := sample.Bounds()
				s.Mean = finite(sample.Mean())
				s.Min, s.Max = finite(lo), finite(hi)
				if len(xs) > 1 {
					s.StdDev = finite(sample.StdDev())
				}
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func distinct(c *column.Column) int {
	seen := make(map[string]bool)
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.String(i); ok {
			seen[v] = true
		}
	}
	return len(seen)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// summaryTable lays summaries out as a bordered table.
func summaryTable(summaries []columnSummary) string {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			s.Name,
			s.Kind,
			strconv.Itoa(s.Nulls),
			strconv.Itoa(s.Distinct),
			formatStat(s.Mean),
			formatStat(s.StdDev),
			formatStat(s.Min),
			formatStat(s.Max),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Column", "Kind", "Nulls", "Distinct", "Mean", "StdDev", "Min", "Max").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleValue
			case col == 1:
				return StyleDim
			}
			return StyleNumber
		})
	return t.Render()
}

func formatStat(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
