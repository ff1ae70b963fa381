package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/shape"
)

// Commands buffers structural changes to the session until the end of a tick, so no
// system sees a block vanish or appear halfway through the systems that follow it.
type Commands struct {
	spawns   []spawnCommand
	destroys []*block.Block
	defers   []func()
}

type spawnCommand struct {
	shape    shape.ShapeID
	position mgl64.Vec3
}

// Spawn queues a new controlled block.
func (c *Commands) Spawn(id shape.ShapeID, position mgl64.Vec3) {
	c.spawns = append(c.spawns, spawnCommand{shape: id, position: position})
}

// Destroy queues the removal of b's body from the world.
func (c *Commands) Destroy(b *block.Block) {
	c.destroys = append(c.destroys, b)
}

// Defer queues fn to run after spawns and destroys.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len reports how many commands are queued.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.defers)
}

// Flush applies the queued commands to s and resets the buffer.
func (c *Commands) Flush(s *Session) {
	destroyed := make(map[block.ID]bool, len(c.destroys))
	for _, b := range c.destroys {
		if destroyed[b.ID] {
			continue
		}
		destroyed[b.ID] = true
		s.destroyBlock(b)
	}

	for _, cmd := range c.spawns {
		s.spawnBlock(cmd.shape, cmd.position)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.destroys)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
}
