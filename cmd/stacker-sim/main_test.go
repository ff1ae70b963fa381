package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 2.0, s.Median)
	assert.InDelta(t, 1.29099, s.StdDev, 1e-5)

	assert.Equal(t, Summary{Mean: 7, Median: 7, Min: 7, Max: 7}, Summarize([]float64{7}))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestStatsFinalize(t *testing.T) {
	s := NewStats([]time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond})
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}

func TestTraceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl.zst")
	trace, err := CreateTrace(path)
	require.NoError(t, err)

	trace.Write(0, game.Event{Kind: game.EventSpawned, Block: 1, Height: 35, Lives: 3})
	trace.Write(2, game.Event{Kind: game.EventGameOver, Time: 61.5, Score: 9})
	require.NoError(t, trace.Close())
	assert.Equal(t, 2, trace.Events())

	records, err := ReadTrace(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Run)
	assert.Equal(t, game.EventSpawned, records[0].Kind)
	assert.Equal(t, 35.0, records[0].Height)
	assert.Equal(t, 2, records[1].Run)
	assert.Equal(t, 9, records[1].Score)
}

func TestPlayStopsAtTimeCap(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5

	result, err := play(0, cfg, persist.NewMemory(), 1, 3, nil)
	require.NoError(t, err)

	if !result.GameOver {
		assert.GreaterOrEqual(t, result.WorldTime, 3.0)
	}
	assert.LessOrEqual(t, result.WorldTime, 3.0+cfg.FixedStep*2)
	assert.NotEmpty(t, result.UpdateTime.Samples)
	require.NotNil(t, result.Fixed)
	assert.Equal(t, 4, result.Fixed.SystemCount)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Runs:   2,
		Seed:   10,
		Config: config.Default(),
		Results: []RunResult{
			{Seed: 10, Score: 12, Landed: 8, WorldTime: 30, GameOver: true},
			{Seed: 11, Score: 20, Landed: 14, WorldTime: 45, GameOver: true},
		},
		HighScore: 20,
	}
	r.Finalize()

	var out bytes.Buffer
	require.NoError(t, r.Generate(&out))
	assert.Contains(t, out.String(), "# Stacker Simulation Report")
	assert.Contains(t, out.String(), "seeds 10..11")
	assert.Contains(t, out.String(), "**Best Score:** 20")
	assert.Contains(t, out.String(), "mean 16.00")
	assert.Contains(t, out.String(), "| 11 | 20 |")
}
