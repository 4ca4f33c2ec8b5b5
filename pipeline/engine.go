// Package pipeline wires the parser, the per-function/merged graph
// builders, and the cycle enumerator into the single entry point the CLI
// (and, for --watch, the file watcher) drives once per run.
package pipeline

import (
	"io"

	"deadlockscan/graph"
	"deadlockscan/model"
	"deadlockscan/parser"
	"deadlockscan/report"
)

// Result is everything one analysis run produced, kept around so callers
// can render it as text, as YAML, or inspect it directly in tests.
type Result struct {
	Functions        []*model.Function
	GlobalStatements []model.Statement
	Merged           *graph.Graph
	Cycles           [][]string
}

// Run parses every file in paths with a fresh Parser and derives the
// merged lock-dependency graph and its cycles. It returns on the first
// file that fails to read — no partial Result is returned for a run that
// hit an I/O error.
func Run(paths []string) (*Result, error) {
	p := parser.New()
	for _, path := range paths {
		if err := p.ParseFile(path); err != nil {
			return nil, err
		}
	}
	return build(p), nil
}

func build(p *parser.Parser) *Result {
	functions := p.Functions()
	merged := graph.Merge(functions)
	return &Result{
		Functions:        functions,
		GlobalStatements: p.GlobalStatements(),
		Merged:           merged,
		Cycles:           merged.DetectAllCycles(),
	}
}

// WriteText writes the five-section stdout report for r.
func (r *Result) WriteText(w io.Writer) {
	report.WriteText(w, r.Functions, r.GlobalStatements, r.Merged, r.Cycles)
}

// NewRunReportYAML renders r as the supplemental structured report
// requested with --format yaml.
func NewRunReportYAML(r *Result) (string, error) {
	return report.NewRunReport(r.Functions, r.Merged, r.Cycles).YAML()
}

// IntroducesNewCycle reports whether r's merged graph has a cycle while
// prev's merged graph has none. A nil prev counts as cycle-free. Only the
// presence of a cycle is compared: a new cycle in a graph that already had
// one is not reported. Used by --watch to
// print an extra stderr notice without changing the five-section report
// itself.
func (r *Result) IntroducesNewCycle(prev *Result) bool {
	if !r.Merged.HasCycle() {
		return false
	}
	if prev == nil {
		return true
	}
	return !prev.Merged.HasCycle()
}
