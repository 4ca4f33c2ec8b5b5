package report

import (
	"fmt"
	"io"

	"deadlockscan/graph"
	"deadlockscan/model"
)

// WriteText writes all five stdout sections for one analysis run, in the
// order the external interface specifies: function declarations, global
// statements, per-function lock graphs, the merged graph, then the
// enumerated deadlock cycles.
func WriteText(w io.Writer, functions []*model.Function, globalStatements []model.Statement, merged *graph.Graph, cycles [][]string) {
	fmt.Fprintln(w, "---- Function Declarations ----")
	for _, fn := range functions {
		fmt.Fprintln(w, FormatFunction(fn))
	}

	fmt.Fprintln(w, "\n---- Global Statements ----")
	for _, stmt := range globalStatements {
		fmt.Fprintln(w, FormatStatement(stmt))
	}

	fmt.Fprintln(w, "\n---- Lock-dependancy graphs (Local per Function) ----")
	for _, fn := range functions {
		fmt.Fprintf(w, "Function %s:\n", fn.Name)
		fmt.Fprint(w, FormatGraph(graph.BuildFunction(fn)))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---- Merged global lock-dependancy graph ----")
	fmt.Fprint(w, FormatGraph(merged))

	fmt.Fprintln(w, FormatCycles(cycles))
}
