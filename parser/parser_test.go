package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deadlockscan/model"
)

func TestParseFileNestedMonitorsResolvesParametersAndThis(t *testing.T) {
	p := New()
	require.NoError(t, p.ParseFile("../testdata/nested_monitors.txt"))
	require.Len(t, p.Functions(), 2)

	transfer := p.Functions()[0]
	require.Equal(t, "transfer", transfer.Name)
	require.False(t, transfer.Synchronized)
	require.Len(t, transfer.Statements, 1)

	l1 := transfer.Statements[0].(*model.MonitorRegion)
	require.Equal(t, "l1", l1.Expression)
	require.True(t, l1.Resolved())
	require.Equal(t, "Ledger", l1.ObjectType)

	// record("start"), synchronized(j1) { ... }
	require.Len(t, l1.Enclosed, 2)
	j1 := l1.Enclosed[1].(*model.MonitorRegion)
	require.Equal(t, "j1", j1.Expression)
	require.Equal(t, "Journal", j1.ObjectType)

	require.Len(t, j1.Enclosed, 2)
	thisRegion := j1.Enclosed[1].(*model.MonitorRegion)
	require.Equal(t, "this", thisRegion.Expression)
	require.Equal(t, "Vault", thisRegion.ObjectType)
	require.Equal(t, "ground", thisRegion.DeclSite)

	reconcile := p.Functions()[1]
	require.Equal(t, "reconcile", reconcile.Name)
	require.True(t, reconcile.Synchronized)
	require.Len(t, reconcile.Statements, 1)

	outer := reconcile.Statements[0].(*model.MonitorRegion)
	require.Equal(t, "this", outer.Expression)
	require.Equal(t, "Vault", outer.ObjectType)
	require.Len(t, outer.Enclosed, 2)

	l2 := outer.Enclosed[0].(*model.MonitorRegion)
	require.Equal(t, "Ledger", l2.ObjectType)
	j2 := outer.Enclosed[1].(*model.MonitorRegion)
	require.Equal(t, "Journal", j2.ObjectType)
}

func TestParseFileDiningDegradesNonIdentifierExpressions(t *testing.T) {
	p := New()
	require.NoError(t, p.ParseFile("../testdata/dining.txt"))
	require.Len(t, p.Functions(), 1)

	eat := p.Functions()[0]
	outer := eat.Statements[0].(*model.MonitorRegion)
	require.Equal(t, "forks[index]", outer.Expression)
	require.False(t, outer.Resolved(), "an array-index expression has no scope entry to resolve against")

	inner := outer.Enclosed[0].(*model.MonitorRegion)
	require.Equal(t, "forks[next]", inner.Expression)
	require.False(t, inner.Resolved())
}

func TestParseFileWaitReleaseEdgeVersusNoEdge(t *testing.T) {
	p := New()
	require.NoError(t, p.ParseFile("../testdata/wait_release.txt"))
	require.Len(t, p.Functions(), 2)

	borrow := p.Functions()[0]
	require.Equal(t, "borrow", borrow.Name)
	lockRegion := borrow.Statements[0].(*model.MonitorRegion)
	require.Equal(t, "Slot", lockRegion.ObjectType)
	require.Len(t, lockRegion.Enclosed, 1)
	wait := lockRegion.Enclosed[0].(*model.WaitOperation)
	require.Equal(t, "obj", wait.Target)
	require.Equal(t, "Basket", wait.ObjectType)

	borrowSelf := p.Functions()[1]
	selfRegion := borrowSelf.Statements[0].(*model.MonitorRegion)
	selfWait := selfRegion.Enclosed[0].(*model.WaitOperation)
	require.Equal(t, "lock", selfWait.Target)
	require.Equal(t, "Slot", selfWait.ObjectType)
	require.Equal(t, selfRegion.DeclSite, selfWait.DeclSite, "waiting on the same lock currently held resolves to the same declaration site")
}

func TestParseFileLoneBraceProducesNoSpuriousStatement(t *testing.T) {
	p := New()
	require.NoError(t, p.ParseFile("../testdata/lone_brace.txt"))
	require.Empty(t, p.Functions())
	// The class header is an ordinary generic line; the closing brace on
	// line 2 must contribute nothing.
	require.Len(t, p.GlobalStatements(), 1)
	require.Equal(t, &model.GenericStatement{LineNumber: 1, Text: "public class Empty {"}, p.GlobalStatements()[0])
}

func TestParseFileEmptyProducesNothing(t *testing.T) {
	p := New()
	require.NoError(t, p.ParseFile("../testdata/empty.txt"))
	require.Empty(t, p.Functions())
	require.Empty(t, p.GlobalStatements())
}

func TestParseFileMissingPathReturnsError(t *testing.T) {
	p := New()
	err := p.ParseFile("../testdata/does_not_exist.txt")
	require.Error(t, err)
}

func TestParseFileCarriesClassNameAcrossFilesUntilOverwritten(t *testing.T) {
	p := New()
	require.NoError(t, p.ParseFile("../testdata/swap_lock.txt"))
	require.NoError(t, p.ParseFile("../testdata/lone_brace.txt"))

	// lone_brace.txt declares its own class, so it overwrites the ambient
	// class rather than inheriting Cell from the first file.
	require.NoError(t, p.ParseFile("../testdata/dining.txt"))
	eat := p.Functions()[len(p.Functions())-1]
	require.Equal(t, "Dining", eat.Class)
}

func TestResolveUnknownIdentifierDegradesWithoutPanic(t *testing.T) {
	p := New()
	objType, declSite := p.resolve("notInScope", NewScope(), 3)
	require.Empty(t, objType)
	require.Empty(t, declSite)
}

func TestParseParametersSkipsMalformedEntries(t *testing.T) {
	params := parseParameters("int a, , String b")
	require.Equal(t, []model.Parameter{{Type: "int", Name: "a"}, {Type: "String", Name: "b"}}, params)
}

func TestParseParametersEmpty(t *testing.T) {
	require.Nil(t, parseParameters(""))
}
