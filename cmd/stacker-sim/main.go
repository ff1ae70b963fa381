package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/stacker/bot"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/persist"
	"github.com/plus3/stacker/physics/chipmunk"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file; defaults are used when empty.")
	runs := flag.Int("runs", 20, "Number of sessions to play.")
	seed := flag.Uint64("seed", 1, "Seed of the first run; run i uses seed+i.")
	spread := flag.Float64("spread", 1.5, "Half width of the band the autopilot aims into.")
	maxTime := flag.Duration("max-time", 10*time.Minute, "World time after which a run is cut off.")
	tracePath := flag.String("trace", "", "Write a zstd-compressed JSON-lines event trace to this file.")
	progress := flag.Bool("progress", true, "Show a progress bar.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var trace *Trace
	if *tracePath != "" {
		var err error
		trace, err = CreateTrace(*tracePath)
		if err != nil {
			log.Fatalf("Failed to open trace: %v", err)
		}
	}

	log.Printf("Playing %d runs...\n", *runs)

	report := &Report{
		Runs:    *runs,
		Seed:    *seed,
		MaxTime: *maxTime,
		Config:  cfg,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	bar := pb.StartNew(*runs)
	if !*progress {
		bar.SetWriter(io.Discard)
	}

	store := persist.NewMemory()
	startTime := time.Now()
	for i := range *runs {
		runCfg := cfg
		runCfg.Seed = *seed + uint64(i)

		result, err := play(i, runCfg, store, *spread, maxTime.Seconds(), trace)
		if err != nil {
			log.Fatalf("Run %d failed: %v", i, err)
		}
		report.Results = append(report.Results, result)
		bar.Increment()
	}
	bar.Finish()

	report.TotalTime = time.Since(startTime)
	report.HighScore = store.GetInt(game.HighScoreKey, 0)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if trace != nil {
		if err := trace.Close(); err != nil {
			log.Fatalf("Failed to close trace: %v", err)
		}
		log.Printf("Wrote %d events to %s\n", trace.Events(), *tracePath)
	}

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// play runs one session on the real physics world until it is over or maxTime
// seconds of world time have passed.
func play(run int, cfg config.Config, store game.Store, spread, maxTime float64, trace *Trace) (RunResult, error) {
	world := chipmunk.NewWorld(chipmunk.OptionsFrom(cfg.Physics))
	pilot := bot.NewPilot(cfg.Seed, spread)

	result := RunResult{Seed: cfg.Seed}
	observe := func(e game.Event) {
		switch e.Kind {
		case game.EventLanded:
			result.Landed++
		case game.EventLost:
			result.Lost++
		case game.EventToppled:
			result.Toppled++
		}
		if trace != nil {
			trace.Write(run, e)
		}
	}

	session, err := game.NewSession(game.Options{
		Config:   cfg,
		Physics:  world,
		Input:    pilot,
		Store:    store,
		Observer: observe,
	})
	if err != nil {
		return result, err
	}
	defer session.Close()
	pilot.Attach(session)

	updates := make([]time.Duration, 0, 1024)
	for session.State.Status != game.Over && session.Clock() < maxTime {
		start := time.Now()
		session.Advance(cfg.FixedStep)
		updates = append(updates, time.Since(start))
	}

	result.Score = session.State.Score
	result.Height = session.State.CurrentHighestPoint
	result.WorldTime = session.Clock()
	result.FinalSpeed = session.State.FallSpeed
	result.GameOver = session.State.Status == game.Over
	result.UpdateTime = NewStats(updates)
	result.Fixed, result.Frame = session.Stats()
	return result, nil
}
