// Package shape holds the block templates a game session spawns from.
// Every template is composite: a set of axis-aligned cells laid out around the
// template origin, mirroring the tetromino layouts of the classic falling-block games.
package shape

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownShape is returned when a ShapeID does not index the catalog.
var ErrUnknownShape = errors.New("shape: unknown shape id")

// ShapeID indexes a Catalog. It is fixed for the lifetime of a spawned block.
type ShapeID int

// Cell is one sub-shape of a composite template.
type Cell struct {
	Offset      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// Template describes a spawnable block.
type Template struct {
	Name  string
	Color [3]uint8
	Cells []Cell
}

// Catalog pairs each block template with the ghost template drawn for it.
type Catalog struct {
	blocks []Template
	ghosts []Template
}

// NewCatalog builds a catalog. blocks and ghosts must be the same length, index i
// of ghosts being the preview for index i of blocks.
func NewCatalog(blocks, ghosts []Template) (*Catalog, error) {
	if len(blocks) == 0 {
		return nil, errors.New("shape: empty catalog")
	}
	if len(blocks) != len(ghosts) {
		return nil, fmt.Errorf("shape: %d block templates but %d ghost templates", len(blocks), len(ghosts))
	}
	for i, t := range blocks {
		if len(t.Cells) == 0 {
			return nil, fmt.Errorf("shape: template %d (%s) has no cells", i, t.Name)
		}
	}
	return &Catalog{blocks: blocks, ghosts: ghosts}, nil
}

// Len reports the number of templates.
func (c *Catalog) Len() int {
	return len(c.blocks)
}

// Block returns the template for id.
func (c *Catalog) Block(id ShapeID) (Template, error) {
	if int(id) < 0 || int(id) >= len(c.blocks) {
		return Template{}, fmt.Errorf("%w: %d", ErrUnknownShape, id)
	}
	return c.blocks[id], nil
}

// Ghost returns the preview template for id.
func (c *Catalog) Ghost(id ShapeID) (Template, error) {
	if int(id) < 0 || int(id) >= len(c.ghosts) {
		return Template{}, fmt.Errorf("%w: %d", ErrUnknownShape, id)
	}
	return c.ghosts[id], nil
}

// Random picks a uniformly distributed id.
func (c *Catalog) Random(rng *rand.Rand) ShapeID {
	return ShapeID(rng.IntN(len(c.blocks)))
}
