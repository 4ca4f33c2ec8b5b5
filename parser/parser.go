package parser

import (
	"regexp"
	"strconv"
	"strings"

	"deadlockscan/logging"
	"deadlockscan/model"
)

// Precompiled line patterns. None of the line patterns are anchored to the
// start/end of the trimmed line (simpleIdentifierPattern, which tests a whole
// monitor expression, is) — matching a leftmost substring, the way a search (rather
// than a full-line match) would — so a trailing line comment or unusual
// spacing around a recognised construct does not defeat the match. This is
// deliberate: the parser is a heuristic, not a grammar.
var (
	classPattern = regexp.MustCompile(`class\s+(\w+)`)

	functionPattern = regexp.MustCompile(
		`((?:(?:public|protected|private|static|final|abstract|synchronized)\s+)*)` + // modifiers
			`([\w<>\[\]]+)\s+` + // return type
			`(\w+)\s*` + // method name
			`\(([^)]*)\)\s*` + // parameter list
			`(?:throws\s+[\w\s,]+)?\s*\{`) // optional throws clause, opening brace

	variablePattern = regexp.MustCompile(
		`([\w<>\[\]]+)\s+` + // variable type
			`(\w+)\s*` + // variable name
			`(?:=\s*[^;]+)?;`) // optional initializer

	synchronizedPattern = regexp.MustCompile(`synchronized\s*\(([^)]+)\)\s*\{`)

	waitPattern = regexp.MustCompile(`(?:(\w+)\.)?wait\(\)\s*;`)

	simpleIdentifierPattern = regexp.MustCompile(`^\w+$`)
)

// Parser accumulates functions and global statements across one or more
// files. It resets its own fields via Reset; a fresh Parser is already
// reset. The ambient class name is deliberately carried forward across
// files in a multi-file run: parsing file B after file A leaves B's
// statements annotated with A's class name until B's own class line (if
// any) is seen.
type Parser struct {
	currentClass     string
	functions        []*model.Function
	globalStatements []model.Statement
	globalScope      *Scope
}

// New returns a Parser ready to parse its first file.
func New() *Parser {
	return &Parser{currentClass: "Unknown", globalScope: NewScope()}
}

// Reset discards all accumulated functions, global statements, and symbol
// bindings, starting a fresh analysis run.
func (p *Parser) Reset() {
	p.currentClass = "Unknown"
	p.functions = nil
	p.globalStatements = nil
	p.globalScope = NewScope()
}

// Functions returns every function parsed so far, in parse order.
func (p *Parser) Functions() []*model.Function { return p.functions }

// GlobalStatements returns every class-body-level statement parsed so far.
func (p *Parser) GlobalStatements() []model.Statement { return p.globalStatements }

// ParseFile reads path and folds its declarations into the accumulator.
func (p *Parser) ParseFile(path string) error {
	lines, err := ReadLines(path)
	if err != nil {
		return err
	}
	p.extractClass(lines)
	p.parseTopLevel(lines)
	return nil
}

// extractClass scans for the first class-declaration line and, if found,
// overwrites the ambient class name used to resolve "this" from here on.
func (p *Parser) extractClass(lines []string) {
	for _, line := range lines {
		if m := classPattern.FindStringSubmatch(line); m != nil {
			p.currentClass = m[1]
			return
		}
	}
}

func (p *Parser) parseTopLevel(lines []string) {
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if m := functionPattern.FindStringSubmatch(line); m != nil {
			i = p.parseFunction(lines, i, m)
			continue
		}
		if m := synchronizedPattern.FindStringSubmatch(line); m != nil {
			i = p.parseGlobalMonitor(lines, i, m)
			continue
		}
		if m := waitPattern.FindStringSubmatch(line); m != nil {
			p.globalStatements = append(p.globalStatements, p.newWait(m, i+1, p.globalScope))
			i++
			continue
		}
		if m := variablePattern.FindStringSubmatch(line); m != nil {
			decl := &model.VariableDeclaration{LineNumber: i + 1, Type: m[1], Name: m[2]}
			p.globalStatements = append(p.globalStatements, decl)
			p.globalScope.Define(m[2], Symbol{Type: m[1], Line: i + 1})
			i++
			continue
		}
		if line == "}" {
			i++
			continue
		}
		p.globalStatements = append(p.globalStatements, &model.GenericStatement{LineNumber: i + 1, Text: line})
		i++
	}
}

func (p *Parser) parseFunction(lines []string, i int, m []string) int {
	modifiers, returnType, name, rawParams := m[1], m[2], m[3], strings.TrimSpace(m[4])
	params := parseParameters(rawParams)

	fn := &model.Function{
		Class:        p.currentClass,
		ReturnType:   returnType,
		Name:         name,
		Parameters:   params,
		LineNumber:   i + 1,
		Synchronized: hasSynchronizedModifier(modifiers),
	}

	scope := NewScope()
	for _, param := range params {
		scope.Define(param.Name, Symbol{Type: param.Type, Line: fn.LineNumber})
	}

	body, next := p.parseBlock(lines, i+1, scope)
	if fn.Synchronized {
		outer := &model.MonitorRegion{
			LineNumber: fn.LineNumber,
			Expression: "this",
			Enclosed:   body,
			ObjectType: p.currentClass,
			DeclSite:   "ground",
		}
		fn.Statements = []model.Statement{outer}
	} else {
		fn.Statements = body
	}

	p.functions = append(p.functions, fn)
	return next + 1
}

func (p *Parser) parseGlobalMonitor(lines []string, i int, m []string) int {
	expr := strings.TrimSpace(m[1])
	lineNumber := i + 1
	body, next := p.parseBlock(lines, i+1, p.globalScope)
	region := p.newMonitorRegion(expr, lineNumber, body, p.globalScope)
	p.globalStatements = append(p.globalStatements, region)
	return next + 1
}

// parseBlock recursively parses lines starting at startIndex until a line
// that is exactly "}", or EOF. It returns the statements collected and the
// index of the terminating line (== len(lines) on EOF).
func (p *Parser) parseBlock(lines []string, startIndex int, enclosing *Scope) ([]model.Statement, int) {
	var statements []model.Statement
	scope := enclosing.Child()
	i := startIndex

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "}" {
			return statements, i
		}

		if m := synchronizedPattern.FindStringSubmatch(line); m != nil {
			expr := strings.TrimSpace(m[1])
			lineNumber := i + 1
			body, next := p.parseBlock(lines, i+1, scope)
			statements = append(statements, p.newMonitorRegion(expr, lineNumber, body, scope))
			i = next + 1
			continue
		}
		if m := waitPattern.FindStringSubmatch(line); m != nil {
			statements = append(statements, p.newWait(m, i+1, scope))
			i++
			continue
		}
		if m := variablePattern.FindStringSubmatch(line); m != nil {
			decl := &model.VariableDeclaration{LineNumber: i + 1, Type: m[1], Name: m[2]}
			statements = append(statements, decl)
			scope.Define(m[2], Symbol{Type: m[1], Line: i + 1})
			i++
			continue
		}

		statements = append(statements, &model.GenericStatement{LineNumber: i + 1, Text: line})
		i++
	}
	return statements, i
}

func (p *Parser) newMonitorRegion(expr string, line int, body []model.Statement, scope *Scope) *model.MonitorRegion {
	objType, declSite := p.resolve(expr, scope, line)
	if objType == "" {
		logging.Debugf("unresolved monitor expression %q at line %d", expr, line)
	}
	return &model.MonitorRegion{
		LineNumber: line,
		Expression: expr,
		Enclosed:   body,
		ObjectType: objType,
		DeclSite:   declSite,
	}
}

func (p *Parser) newWait(m []string, line int, scope *Scope) *model.WaitOperation {
	target := m[1]
	if target == "" {
		target = "this"
	}
	objType, declSite := p.resolve(target, scope, line)
	if objType == "" {
		logging.Debugf("unresolved wait target %q at line %d", target, line)
	}
	return &model.WaitOperation{
		LineNumber: line,
		Target:     target,
		ObjectType: objType,
		DeclSite:   declSite,
	}
}

// resolve maps a monitor/wait expression to (declared type, declaration
// site) using the scope visible at the call site. Formal parameters and
// "this" are handled by the caller having already seeded the scope or by
// the ambient-class special case below.
func (p *Parser) resolve(expr string, scope *Scope, atLine int) (objType, declSite string) {
	if expr == "this" {
		return p.currentClass, "ground"
	}
	if simpleIdentifierPattern.MatchString(expr) {
		if sym, ok := scope.Lookup(expr); ok {
			return sym.Type, strconv.Itoa(sym.Line)
		}
	}
	return "", ""
}

func hasSynchronizedModifier(modifiers string) bool {
	return strings.Contains(modifiers, "synchronized")
}

func parseParameters(raw string) []model.Parameter {
	if raw == "" {
		return nil
	}
	var params []model.Parameter
	for _, part := range strings.Split(raw, ",") {
		tokens := strings.Fields(strings.TrimSpace(part))
		if len(tokens) < 2 {
			continue
		}
		params = append(params, model.Parameter{Type: tokens[0], Name: tokens[1]})
	}
	return params
}
