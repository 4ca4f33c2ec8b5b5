package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNestedMonitorsProducesCycle(t *testing.T) {
	result, err := Run([]string{"../testdata/nested_monitors.txt"})
	require.NoError(t, err)
	require.Len(t, result.Functions, 2)
	assert.True(t, result.Merged.HasCycle())
	assert.NotEmpty(t, result.Cycles)
}

func TestRunDiningProducesNoCycle(t *testing.T) {
	result, err := Run([]string{"../testdata/dining.txt"})
	require.NoError(t, err)
	assert.False(t, result.Merged.HasCycle())
	assert.Empty(t, result.Cycles)
}

func TestRunMultipleFilesCarriesFunctionsForward(t *testing.T) {
	result, err := Run([]string{"../testdata/swap_lock.txt", "../testdata/dining.txt"})
	require.NoError(t, err)
	// swap_lock.txt's constructor header also matches the function pattern.
	require.Len(t, result.Functions, 3)
	assert.Equal(t, "Cell", result.Functions[0].Name)
	assert.Equal(t, "swapVal", result.Functions[1].Name)
	assert.Equal(t, "eat", result.Functions[2].Name)
}

func TestRunMissingFileReturnsErrorAndNoResult(t *testing.T) {
	result, err := Run([]string{"../testdata/does_not_exist.txt"})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRunEmptyFileProducesEmptyResult(t *testing.T) {
	result, err := Run([]string{"../testdata/empty.txt"})
	require.NoError(t, err)
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.GlobalStatements)
	assert.Empty(t, result.Cycles)
}

func TestResultWriteTextProducesNonEmptyReport(t *testing.T) {
	result, err := Run([]string{"../testdata/swap_lock.txt"})
	require.NoError(t, err)

	var buf bytes.Buffer
	result.WriteText(&buf)
	assert.Contains(t, buf.String(), "swapVal")
}

func TestNewRunReportYAMLIncludesCycles(t *testing.T) {
	result, err := Run([]string{"../testdata/nested_monitors.txt"})
	require.NoError(t, err)

	out, err := NewRunReportYAML(result)
	require.NoError(t, err)
	assert.Contains(t, out, "cycles:")
}

func TestIntroducesNewCycleTransitions(t *testing.T) {
	clean, err := Run([]string{"../testdata/dining.txt"})
	require.NoError(t, err)
	cyclic, err := Run([]string{"../testdata/nested_monitors.txt"})
	require.NoError(t, err)

	assert.False(t, clean.IntroducesNewCycle(nil))
	assert.True(t, cyclic.IntroducesNewCycle(nil))
	assert.True(t, cyclic.IntroducesNewCycle(clean))
	assert.False(t, cyclic.IntroducesNewCycle(cyclic))
}
