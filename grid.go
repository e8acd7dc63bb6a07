package mandel

import (
	"context"
	"fmt"
	"image"
)

// Grid holds one iteration count per pixel, Rows[row][col].
type Grid struct {
	Width   int
	Height  int
	MaxIter int
	Rows    [][]int
}

// NewGrid allocates a zeroed width × height grid.
func NewGrid(width, height, maxIter int) *Grid {
	rows := make([][]int, height)
	cells := make([]int, width*height)
	for y := range rows {
		rows[y] = cells[y*width : (y+1)*width : (y+1)*width]
	}
	return &Grid{Width: width, Height: height, MaxIter: maxIter, Rows: rows}
}

func (g *Grid) At(col, row int) int {
	return g.Rows[row][col]
}

// Bounds returns the grid as an image rectangle anchored at the origin.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// Paste copies the counts of t into g at the tile's global coordinates.
func (g *Grid) Paste(t Tile) error {
	if !t.Rect.In(g.Bounds()) {
		return fmt.Errorf("tile %s outside grid %s", t.Rect, g.Bounds())
	}
	if len(t.Counts) != t.Rect.Dy() {
		return fmt.Errorf("tile %s has %d rows of counts, want %d", t.Rect, len(t.Counts), t.Rect.Dy())
	}
	for i, row := range t.Counts {
		if len(row) != t.Rect.Dx() {
			return fmt.Errorf("tile %s row %d has %d counts, want %d", t.Rect, i, len(row), t.Rect.Dx())
		}
	}
	for y := t.Rect.Min.Y; y < t.Rect.Max.Y; y++ {
		copy(g.Rows[y][t.Rect.Min.X:t.Rect.Max.X], t.Counts[y-t.Rect.Min.Y])
	}
	return nil
}

// Equal reports whether both grids have the same shape, budget and counts.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height || g.MaxIter != o.MaxIter {
		return false
	}
	for y := range g.Rows {
		for x := range g.Rows[y] {
			if g.Rows[y][x] != o.Rows[y][x] {
				return false
			}
		}
	}
	return true
}

// Tile is a rectangular piece of a grid. Rect is in global pixel coordinates
// and Counts is indexed relative to Rect.Min.
type Tile struct {
	Rect   image.Rectangle
	Counts [][]int
}

// Sampler evaluates the escape time of every pixel in a tile.
type Sampler struct {
	// OnTileRender is called before a tile is computed, if set.
	OnTileRender func(tile image.Rectangle)
}

func (s Sampler) RenderTile(ctx context.Context, r Region, tile image.Rectangle, width, height, maxIter int) (Tile, error) {
	if s.OnTileRender != nil {
		s.OnTileRender(tile)
	}

	counts := make([][]int, tile.Dy())
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		if err := ctx.Err(); err != nil {
			return Tile{}, err
		}
		row := make([]int, tile.Dx())
		for px := tile.Min.X; px < tile.Max.X; px++ {
			row[px-tile.Min.X] = Iterate(r.PointAt(px, py, width, height), maxIter)
		}
		counts[py-tile.Min.Y] = row
	}

	return Tile{Rect: tile, Counts: counts}, nil
}

var _ TileRenderer = Sampler{}

// Compute evaluates every pixel of the frame described by cfg. The grid is complete
// when Compute returns without error. Results do not depend on cfg.Workers.
func Compute(ctx context.Context, cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Workers > 1 {
		return newTileScheduler(cfg).run(ctx, Sampler{}, cfg.Workers)
	}

	g := NewGrid(cfg.Width, cfg.Height, cfg.MaxIter)
	t, err := Sampler{}.RenderTile(ctx, cfg.Region, g.Bounds(), cfg.Width, cfg.Height, cfg.MaxIter)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := g.Paste(t); err != nil {
		return nil, err
	}
	return g, nil
}
