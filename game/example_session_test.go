package game_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/physics/physicstest"
)

// ExampleSession walks one block from spawn to landing. The scripted physics world
// stands in for a real engine: the test places the block and reports the contact.
func ExampleSession() {
	world := physicstest.NewWorld()
	session, err := game.NewSession(game.Options{
		Config:  config.Default(),
		Physics: world,
	})
	if err != nil {
		panic(err)
	}

	session.FixedUpdate()
	b := session.Active()
	fmt.Printf("spawned at y=%.0f\n", b.Position.Y())

	world.SetPose(b.Body, mgl64.Vec3{0, 12.4, 0}, 0)
	world.Collide(b.Body, 0)
	session.FixedUpdate()

	fmt.Println("landed:", b.Landed, "tower:", session.Tower.Len())
	fmt.Println("score:", session.State.Score)

	// Output:
	// spawned at y=35
	// landed: true tower: 1
	// score: 12
}

// ExampleObserver shows the event stream a headless run can record.
func ExampleObserver() {
	world := physicstest.NewWorld()
	cfg := config.Default()
	cfg.Lives = 1

	session, err := game.NewSession(game.Options{
		Config:   cfg,
		Physics:  world,
		Observer: func(e game.Event) { fmt.Println(e.Kind, e.Lives) },
	})
	if err != nil {
		panic(err)
	}

	session.FixedUpdate()
	session.Active().Position = mgl64.Vec3{0, -10, 0}
	session.Update(cfg.FixedStep)

	// Output:
	// spawned 1
	// lost 1
	// life_lost 0
	// game_over 0
}
