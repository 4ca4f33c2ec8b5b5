// Package model holds the syntactic values the parser produces: statements,
// functions, parameters, and the lock-identity strings derived from them.
package model

import "strings"

// Statement is the closed sum type produced by the block parser. Every
// variant carries the 1-origin source line it was parsed from.
type Statement interface {
	Line() int
}

// GenericStatement is an opaque, unrecognised line. The analyser never
// looks inside its text.
type GenericStatement struct {
	LineNumber int
	Text       string
}

func (s *GenericStatement) Line() int { return s.LineNumber }

// VariableDeclaration binds Name to Type at LineNumber in the enclosing
// scope.
type VariableDeclaration struct {
	LineNumber int
	Type       string
	Name       string
}

func (s *VariableDeclaration) Line() int { return s.LineNumber }

// MonitorRegion is a synchronized(...) block. ObjectType and DeclSite are
// filled in by the resolver at parse time; both are empty when the monitor
// expression could not be resolved against any enclosing scope.
type MonitorRegion struct {
	LineNumber int
	Expression string
	Enclosed   []Statement
	ObjectType string
	DeclSite   string
}

func (s *MonitorRegion) Line() int { return s.LineNumber }

// Resolved reports whether the resolver found a declaration for this
// monitor's expression.
func (s *MonitorRegion) Resolved() bool { return s.ObjectType != "" && s.DeclSite != "" }

// WaitOperation is a call that releases and later re-acquires Target's
// monitor. Target is "this" when the source wrote a bare wait().
type WaitOperation struct {
	LineNumber int
	Target     string
	ObjectType string
	DeclSite   string
}

func (s *WaitOperation) Line() int { return s.LineNumber }

func (s *WaitOperation) Resolved() bool { return s.ObjectType != "" && s.DeclSite != "" }

// Parameter is a function formal: a declared type paired with a name.
type Parameter struct {
	Type string
	Name string
}

func (p Parameter) String() string { return p.Type + " " + p.Name }

// Function is a parsed method: its ambient class, signature, declaration
// site, and body. Synchronized reports whether the source declared it with
// the synchronized modifier — the body's first statement is then the
// synthetic outer MonitorRegion wrapping the rest.
type Function struct {
	Class        string
	ReturnType   string
	Name         string
	Parameters   []Parameter
	LineNumber   int
	Statements   []Statement
	Synchronized bool
}

// LockIdentity is a "TYPE:SITE" string, or the raw monitor expression text
// when resolution failed. Canonical strips the ":SITE" suffix, collapsing
// every instance of a type to one node in the merged graph.
type LockIdentity string

// NewLockIdentity builds the fully-qualified identity for a resolved
// monitor. When objType or declSite is empty (unresolved), the raw
// expression is used unchanged as a degraded identity — equality only.
func NewLockIdentity(expr, objType, declSite string) LockIdentity {
	if objType == "" || declSite == "" {
		return LockIdentity(expr)
	}
	return LockIdentity(objType + ":" + declSite)
}

// Canonical returns the TYPE portion of the identity, used by the merged
// global graph to collapse per-site locks to per-type locks.
func (id LockIdentity) Canonical() string {
	s := string(id)
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func (id LockIdentity) String() string { return string(id) }
