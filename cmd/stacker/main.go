package main

import (
	"errors"
	"flag"
	"log"
	"math/rand/v2"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stacker/audio"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/persist"
	"github.com/plus3/stacker/physics/chipmunk"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

func main() {
	configPath := flag.String("config", "", "YAML settings file; defaults are used when empty.")
	scoresPath := flag.String("scores", "stacker-scores.yaml", "File the high score is kept in.")
	server := flag.String("server", "", "Score server base URL; overrides -scores.")
	mute := flag.Bool("mute", false, "Disable sound.")
	debug := flag.Bool("debug", false, "Show the scheduler overlay.")
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
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer player.Close()

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("Stacker", ScreenWidth, ScreenHeight)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &Game{
		cfg:       cfg,
		fixedSeed: cfg.Seed != 0,
		store:     store,
		player:    player,
		imgui:     backend,
		debug:     *debug,
		overlay:   newOverlay(120),
		renderer:  newRenderer(),
	}
	if err := g.start(); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	g.session.Close()
}

// Game adapts a Session to ebiten's update/draw loop. Ebiten calls Update at a
// fixed TPS, so every Update advances the session by one tick's worth of time.
type Game struct {
	cfg       config.Config
	fixedSeed bool
	store     game.Store
	player    *audio.Player
	imgui     *ebitenbackend.EbitenBackend
	debug     bool

	session  *game.Session
	controls *controls
	hud      *hud
	nav      *navigator
	overlay  *overlay
	renderer *renderer
}

func (g *Game) start() error {
	if !g.fixedSeed {
		g.cfg.Seed = rand.Uint64()
	}
	g.hud = &hud{}
	g.nav = &navigator{}
	g.controls = newControls(ebitenKeys{})
	session, err := game.NewSession(game.Options{
		Config:    g.cfg,
		Physics:   chipmunk.NewWorld(chipmunk.OptionsFrom(g.cfg.Physics)),
		Input:     g.controls,
		Presenter: audio.Presenter{Presenter: g.hud, Player: g.player},
		Store:     g.store,
		Navigator: g.nav,
	})
	if err != nil {
		return err
	}
	g.session = session
	g.controls.session = session
	return nil
}

func (g *Game) Update() error {
	g.imgui.BeginFrame()
	defer g.imgui.EndFrame()

	g.controls.menu()
	switch {
	case g.nav.quit:
		return ebiten.Termination
	case g.nav.again:
		g.session.Close()
		if err := g.start(); err != nil {
			return err
		}
	}

	g.session.Advance(1 / float64(ebiten.TPS()))
	if g.debug {
		g.overlay.render(g.session)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.session.Snapshot(), g.hud)
	g.imgui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

type navigator struct {
	again bool
	quit  bool
}

func (n *navigator) NewRun() { n.again = true }
func (n *navigator) Quit()   { n.quit = true }
