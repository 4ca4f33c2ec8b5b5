package report

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"deadlockscan/graph"
	"deadlockscan/model"
)

// Edge is a single lock-order edge, from the merged graph, in a form that
// marshals cleanly.
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// FunctionSummary is the subset of a Function worth surfacing in the
// structured report.
type FunctionSummary struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	Line  int    `yaml:"line"`
}

// RunReport is the supplemental, machine-readable form of one analysis
// run, requested with --format yaml. It carries a fresh run identifier so
// separate invocations against changed input (see the --watch mode) can be
// told apart in downstream tooling.
type RunReport struct {
	RunID       string            `yaml:"run_id"`
	Functions   []FunctionSummary `yaml:"functions"`
	MergedEdges []Edge            `yaml:"merged_edges"`
	Cycles      [][]string        `yaml:"cycles"`
}

// NewRunReport builds a RunReport from one completed analysis run.
func NewRunReport(functions []*model.Function, merged *graph.Graph, cycles [][]string) RunReport {
	report := RunReport{RunID: uuid.NewString()}

	for _, fn := range functions {
		report.Functions = append(report.Functions, FunctionSummary{
			Name:  fn.Name,
			Class: fn.Class,
			Line:  fn.LineNumber,
		})
	}

	for _, edge := range merged.Edges() {
		report.MergedEdges = append(report.MergedEdges, Edge{From: edge[0], To: edge[1]})
	}

	report.Cycles = cycles
	return report
}

// YAML marshals the report.
func (r RunReport) YAML() (string, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling run report: %w", err)
	}
	return string(out), nil
}
