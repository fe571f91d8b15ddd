package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stundenplan/internal/schedule"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, schedule.CoverExact, cfg.Schedule.Coverage)
	assert.InDelta(t, 1e6, cfg.Schedule.DropPenalty, 1e-6)
	assert.InDelta(t, 100, cfg.Schedule.Weights[schedule.TermTeacherSoftTime], 1e-9)
	assert.True(t, cfg.Schedule.Enabled[schedule.TermRoomWaste])
	assert.Equal(t, 3, cfg.Schedule.Params.MaxConsecutive)
}

func TestLoadWeightOverrides(t *testing.T) {
	t.Setenv("WEIGHTS", "ROOM_WASTE=10.5, t_max_consec=0")
	t.Setenv("COVERAGE_MODE", "soft")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, schedule.CoverSoft, cfg.Schedule.Coverage)
	assert.InDelta(t, 10.5, cfg.Schedule.Weights[schedule.TermRoomWaste], 1e-9)
	assert.False(t, cfg.Schedule.Enabled[schedule.TermMaxConsecutive])
}

func TestLoadRejectsUnknownWeight(t *testing.T) {
	t.Setenv("WEIGHTS", "NOT_A_TERM=3")

	_, err := Load()
	assert.ErrorContains(t, err, "NOT_A_TERM")
}

func TestApplyWeightsLayersOverConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.NoError(t, cfg.ApplyWeights("SEM_SINGLE_DAY=0,ROOM_WASTE=7"))
	assert.False(t, cfg.Schedule.Enabled[schedule.TermSemesterSingleDay])
	assert.InDelta(t, 7, cfg.Schedule.Weights[schedule.TermRoomWaste], 1e-9)

	assert.ErrorContains(t, cfg.ApplyWeights("BOGUS=1"), "BOGUS")
}

func TestParseWeights(t *testing.T) {
	weights, err := parseWeights("A=1,B=2.5")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 1, "B": 2.5}, weights)

	_, err = parseWeights("garbage")
	assert.Error(t, err)

	empty, err := parseWeights("  ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
