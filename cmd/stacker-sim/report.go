package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"gonum.org/v1/gonum/stat"
)

// RunResult is the outcome of one session.
type RunResult struct {
	Seed       uint64
	Score      int
	Height     float64
	Landed     int
	Lost       int
	Toppled    int
	WorldTime  float64
	FinalSpeed float64
	GameOver   bool
	UpdateTime Stats
	Fixed      *game.SchedulerStats
	Frame      *game.SchedulerStats
}

type Report struct {
	// Configuration
	Runs    int
	Seed    uint64
	MaxTime time.Duration
	Config  config.Config

	// Results
	Results   []RunResult
	TotalTime time.Duration
	HighScore int

	Score      Summary
	Landed     Summary
	WorldTime  Summary
	UpdateTime Stats
	Fixed      *game.SchedulerStats
	Frame      *game.SchedulerStats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Summary describes one metric across runs.
type Summary struct {
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return Summary{
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func NewStats(samples []time.Duration) Stats {
	s := Stats{Samples: samples}
	s.Finalize()
	return s
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Finalize folds the per-run results into the summaries.
func (r *Report) Finalize() {
	scores := make([]float64, len(r.Results))
	landed := make([]float64, len(r.Results))
	worldTime := make([]float64, len(r.Results))
	var updates []time.Duration

	for i, res := range r.Results {
		scores[i] = float64(res.Score)
		landed[i] = float64(res.Landed)
		worldTime[i] = res.WorldTime
		updates = append(updates, res.UpdateTime.Samples...)
	}

	r.Score = Summarize(scores)
	r.Landed = Summarize(landed)
	r.WorldTime = Summarize(worldTime)
	r.UpdateTime = NewStats(updates)

	if n := len(r.Results); n > 0 {
		r.Fixed = r.Results[n-1].Fixed
		r.Frame = r.Results[n-1].Frame
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Stacker Simulation Report

## Configuration
- **Runs:** {{.Runs}} (seeds {{.Seed}}..{{last .Seed .Runs}})
- **World Time Cap:** {{.MaxTime}}
- **Lives:** {{.Config.Lives}}
- **Fall Speed:** {{.Config.FallSpeed}} (+1 every {{.Config.FallSpeedIncrease}}s, cap {{.Config.FallSpeedCap}})
- **Fixed Step:** {{.Config.FixedStep}}s

## Results
- **Best Score:** {{.HighScore}}
- **Score:** mean {{f2 .Score.Mean}} ± {{f2 .Score.StdDev}}, median {{f2 .Score.Median}}, range {{f2 .Score.Min}}..{{f2 .Score.Max}}
- **Blocks Landed:** mean {{f2 .Landed.Mean}} ± {{f2 .Landed.StdDev}}, median {{f2 .Landed.Median}}
- **World Time (s):** mean {{f2 .WorldTime.Mean}}, range {{f2 .WorldTime.Min}}..{{f2 .WorldTime.Max}}

| Seed | Score | Height | Landed | Lost | Toppled | World Time | Speed | Over |
|---|---|---|---|---|---|---|---|---|
{{range .Results}}| {{.Seed}} | {{.Score}} | {{f2 .Height}} | {{.Landed}} | {{.Lost}} | {{.Toppled}} | {{f2 .WorldTime}} | {{.FinalSpeed}} | {{.GameOver}} |
{{end}}
## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Advance Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .Fixed}}
### Fixed Systems (last run)
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{end}}{{with .Frame}}
### Frame Systems (last run)
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end)
`

	fm := template.FuncMap{
		"f2": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"last": func(first uint64, runs int) uint64 {
			return first + uint64(max(runs, 1)) - 1
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
