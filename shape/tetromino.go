package shape

import "github.com/go-gl/mathgl/mgl64"

var tetrominoLayouts = []struct {
	name  string
	color [3]uint8
	rows  []string
}{
	{"I", [3]uint8{135, 206, 235}, []string{"####"}},
	{"O", [3]uint8{255, 203, 0}, []string{"##", "##"}},
	{"T", [3]uint8{200, 122, 255}, []string{".#.", "###"}},
	{"S", [3]uint8{0, 158, 47}, []string{".##", "##."}},
	{"Z", [3]uint8{255, 109, 194}, []string{"##.", ".##"}},
	{"J", [3]uint8{0, 121, 241}, []string{"#..", "###"}},
	{"L", [3]uint8{255, 161, 0}, []string{"..#", "###"}},
}

const ghostTint = 96

// Tetrominoes returns the seven-piece catalog built from unit cubes of the given edge.
// Each template is centred on the mean of its cells so rotation pivots on the piece.
func Tetrominoes(edge float64) *Catalog {
	blocks := make([]Template, 0, len(tetrominoLayouts))
	ghosts := make([]Template, 0, len(tetrominoLayouts))

	for _, layout := range tetrominoLayouts {
		cells := cellsFromRows(layout.rows, edge)
		blocks = append(blocks, Template{Name: layout.name, Color: layout.color, Cells: cells})

		ghostCells := make([]Cell, len(cells))
		copy(ghostCells, cells)
		ghosts = append(ghosts, Template{
			Name:  layout.name + "-ghost",
			Color: [3]uint8{ghostTint, ghostTint, ghostTint},
			Cells: ghostCells,
		})
	}

	catalog, err := NewCatalog(blocks, ghosts)
	if err != nil {
		panic(err)
	}
	return catalog
}

func cellsFromRows(rows []string, edge float64) []Cell {
	half := mgl64.Vec3{edge / 2, edge / 2, edge / 2}

	var cells []Cell
	var centroid mgl64.Vec3
	for r, row := range rows {
		for c, ch := range row {
			if ch != '#' {
				continue
			}
			// rows are written top-down; world Y grows upward
			offset := mgl64.Vec3{float64(c) * edge, float64(len(rows)-1-r) * edge, 0}
			centroid = centroid.Add(offset)
			cells = append(cells, Cell{Offset: offset, HalfExtents: half})
		}
	}

	centroid = centroid.Mul(1 / float64(len(cells)))
	for i := range cells {
		cells[i].Offset = cells[i].Offset.Sub(centroid)
	}
	return cells
}
