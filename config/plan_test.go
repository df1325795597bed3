package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectFlags(t *testing.T, raw string) (ActivationPlan, error) {
	t.Helper()
	flags, err := ParseDefaultsFlags(raw)
	require.NoError(t, err)
	return Select(&Resolved{EnabledDefaults: flags})
}

func TestSelect_UnsetMeansAll(t *testing.T) {
	plan, err := Select(&Resolved{})
	require.NoError(t, err)
	assert.True(t, plan.Traces)
	assert.True(t, plan.Metrics)
	assert.True(t, plan.Logs)
	assert.True(t, plan.OTLPExporter)
}

func TestSelect_EmptyEqualsAll(t *testing.T) {
	empty, err := selectFlags(t, "")
	require.NoError(t, err)
	all, err := selectFlags(t, "All")
	require.NoError(t, err)
	assert.Equal(t, all, empty)
}

func TestSelect_None(t *testing.T) {
	plan, err := selectFlags(t, "None")
	require.NoError(t, err)
	assert.False(t, plan.Traces)
	assert.False(t, plan.Metrics)
	assert.False(t, plan.Logs)
}

func TestSelect_NoneCombinedFails(t *testing.T) {
	_, err := selectFlags(t, "None,Traces")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDefaultsCombination)
}

func TestSelect_Subset(t *testing.T) {
	plan, err := selectFlags(t, "Traces,Metrics")
	require.NoError(t, err)
	assert.True(t, plan.Traces)
	assert.True(t, plan.Metrics)
	assert.False(t, plan.Logs)
}

func TestSelect_SkipExporter(t *testing.T) {
	plan, err := Select(&Resolved{SkipOTLPExporter: true})
	require.NoError(t, err)
	assert.True(t, plan.Traces)
	assert.False(t, plan.OTLPExporter)

	// Skip also applies when defaults are off entirely.
	plan, err = Select(&Resolved{EnabledDefaults: DefaultsNone, SkipOTLPExporter: true})
	require.NoError(t, err)
	assert.False(t, plan.OTLPExporter)
}

func TestActivationPlan_Defaults(t *testing.T) {
	plan := ActivationPlan{Traces: true, Logs: true}
	assert.True(t, plan.Defaults(SignalTraces))
	assert.False(t, plan.Defaults(SignalMetrics))
	assert.True(t, plan.Defaults(SignalLogs))
	assert.False(t, plan.Defaults(Signal(99)))
}

func TestSignal_String(t *testing.T) {
	assert.Equal(t, "traces", SignalTraces.String())
	assert.Equal(t, "metrics", SignalMetrics.String())
	assert.Equal(t, "logs", SignalLogs.String())
	assert.Len(t, Signals(), 3)
}
