package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/stacker/audio"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/persist"
	"github.com/plus3/stacker/physics/chipmunk"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file; defaults are used when empty.")
	scoresPath := flag.String("scores", "stacker-scores.yaml", "File the high score is kept in.")
	server := flag.String("server", "", "Score server base URL; overrides -scores.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var store game.Store
	if *server != "" {
		store = persist.NewHTTP(*server, nil)
	} else {
		file, err := persist.OpenFile(*scoresPath)
		if err != nil {
			log.Fatalf("Failed to open scores: %v", err)
		}
		store = file
	}

	player := audio.NewPlayer()
	if !*mute {
		if err := player.Init(); err != nil {
			// Non-fatal, the game runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	fixedSeed := cfg.Seed
	for {
		if fixedSeed == 0 {
			cfg.Seed = rand.Uint64()
		}
		if !play(screen, events, cfg, store, player) {
			return
		}
	}
}

// play runs one session and reports whether another should follow.
func play(screen tcell.Screen, events <-chan tcell.Event, cfg config.Config, store game.Store, player *audio.Player) bool {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nav := &navigator{cancel: cancel}
	hud := &hud{}
	keys := newKeyboard(events, nav)

	session, err := game.NewSession(game.Options{
		Config:    cfg,
		Physics:   chipmunk.NewWorld(chipmunk.OptionsFrom(cfg.Physics)),
		Input:     keys,
		Presenter: audio.Presenter{Presenter: hud, Player: player},
		Store:     store,
		Navigator: nav,
	})
	if err != nil {
		log.Printf("Failed to start session: %v", err)
		return false
	}
	defer session.Close()
	keys.session = session

	view := &view{screen: screen, hud: hud}
	session.Run(ctx, 16*time.Millisecond, view.draw)

	return nav.again
}

type navigator struct {
	cancel context.CancelFunc
	again  bool
}

func (n *navigator) NewRun() {
	n.again = true
	n.cancel()
}

func (n *navigator) Quit() {
	n.again = false
	n.cancel()
}
