// Package report renders parsed functions, statements, and lock graphs to
// the text format spelled out for this analyser's stdout, plus an
// optional structured form.
package report

import (
	"fmt"
	"strings"

	"deadlockscan/graph"
	"deadlockscan/model"
)

// FormatFunction renders a function header and its body, one statement
// per indented line, matching the original tool's flat (non-cumulative)
// indentation: a statement nested several synchronized blocks deep is
// still printed with a single level of leading indent.
func FormatFunction(fn *model.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Line %d: %s %s(%s) {", fn.LineNumber, fn.ReturnType, fn.Name, formatParameters(fn.Parameters))
	for _, stmt := range fn.Statements {
		b.WriteString("\n    ")
		b.WriteString(FormatStatement(stmt))
	}
	b.WriteString("\n}")
	return b.String()
}

// FormatStatement renders a single statement, recursing into a
// MonitorRegion's enclosed statements.
func FormatStatement(stmt model.Statement) string {
	switch s := stmt.(type) {
	case *model.GenericStatement:
		return fmt.Sprintf("Line %d: %s", s.LineNumber, s.Text)

	case *model.VariableDeclaration:
		return fmt.Sprintf("Line %d: %s %s;", s.LineNumber, s.Type, s.Name)

	case *model.MonitorRegion:
		var b strings.Builder
		fmt.Fprintf(&b, "Line %d: synchronized(%s", s.LineNumber, s.Expression)
		if s.Resolved() {
			fmt.Fprintf(&b, " /* type: %s, declared at: %s */", s.ObjectType, s.DeclSite)
		}
		b.WriteString(") {")
		for _, inner := range s.Enclosed {
			b.WriteString("\n    ")
			b.WriteString(FormatStatement(inner))
		}
		b.WriteString("\n}")
		return b.String()

	case *model.WaitOperation:
		var b strings.Builder
		if s.Target == "this" {
			fmt.Fprintf(&b, "Line %d: wait()", s.LineNumber)
		} else {
			fmt.Fprintf(&b, "Line %d: %s.wait()", s.LineNumber, s.Target)
		}
		if s.Resolved() {
			fmt.Fprintf(&b, " /* type: %s, declared at: %s */", s.ObjectType, s.DeclSite)
		}
		b.WriteString(";")
		return b.String()

	default:
		return fmt.Sprintf("<unknown statement at line %d>", stmt.Line())
	}
}

func formatParameters(params []model.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// FormatGraph renders a lock-dependency graph's "Lock Order Graph:" header
// and one "  from -> to" line per edge.
func FormatGraph(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("Lock Order Graph:\n")
	for _, edge := range g.Edges() {
		fmt.Fprintf(&b, "  %s -> %s\n", edge[0], edge[1])
	}
	return b.String()
}

// FormatCycles renders the "Potential deadlock paths: " line: a
// Java-list-style bracketed rendering of the cycle-vertex lists,
// e.g. "Potential deadlock paths: [[A, B, A], [C, D, C]]".
func FormatCycles(cycles [][]string) string {
	parts := make([]string, len(cycles))
	for i, cycle := range cycles {
		parts[i] = "[" + strings.Join(cycle, ", ") + "]"
	}
	return "Potential deadlock paths: [" + strings.Join(parts, ", ") + "]"
}
