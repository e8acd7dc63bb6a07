package mandel

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// tileScheduler hands out bands of the grid to parallel workers and assembles the results.
type tileScheduler struct {
	cfg     Config
	grid    *Grid
	workers int

	totalPixels    int
	finishedPixels int

	unstarted map[image.Rectangle]struct{}
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

func newTileScheduler(cfg Config) *tileScheduler {
	grid := NewGrid(cfg.Width, cfg.Height, cfg.MaxIter)
	allTilesSlice := splitRectNoClip(grid.Bounds(), cfg.Width, cfg.TileRows)
	allTiles := make(map[image.Rectangle]struct{}, len(allTilesSlice))
	for _, t := range allTilesSlice {
		allTiles[t] = struct{}{}
	}
	return &tileScheduler{
		cfg:         cfg,
		grid:        grid,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalPixels: cfg.Width * cfg.Height,
	}
}

func (ts *tileScheduler) logf(format string, args ...any) {
	if ts.cfg.Logf != nil {
		ts.cfg.Logf(format, args...)
	}
}

func (ts *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	ts.m.Lock()
	defer ts.m.Unlock()

	if len(ts.unstarted) == 0 {
		return image.Rectangle{}, false
	}
	for tile = range ts.unstarted {
		break
	}
	delete(ts.unstarted, tile)
	ts.inProcess[tile] = struct{}{}
	return tile, true
}

func (ts *tileScheduler) finished() float32 {
	ts.m.Lock()
	defer ts.m.Unlock()
	return float32(ts.finishedPixels) / float32(ts.totalPixels)
}

func (ts *tileScheduler) tileFinished(t Tile) error {
	ts.m.Lock()
	defer ts.m.Unlock()

	if _, found := ts.inProcess[t.Rect]; !found {
		return fmt.Errorf("tile %s was not handed out", t.Rect)
	}
	if err := ts.grid.Paste(t); err != nil {
		return err
	}
	ts.finishedPixels += t.Rect.Dx() * t.Rect.Dy()
	delete(ts.inProcess, t.Rect)
	return nil
}

func (ts *tileScheduler) done() bool {
	ts.m.Lock()
	defer ts.m.Unlock()
	return len(ts.unstarted) == 0 && len(ts.inProcess) == 0
}

func (ts *tileScheduler) incActiveWorkers() {
	ts.m.Lock()
	ts.workers++
	w := ts.workers
	ts.m.Unlock()

	ts.logf("workers: %d", w)
}

func (ts *tileScheduler) decActiveWorkers() {
	ts.m.Lock()
	ts.workers--
	w := ts.workers
	ts.m.Unlock()

	ts.logf("workers: %d", w)
}

// render computes tiles until none are left.
// can be called from multiple goroutines in parallel
func (ts *tileScheduler) render(ctx context.Context, renderer TileRenderer) error {
	ts.incActiveWorkers()
	defer ts.decActiveWorkers()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tile, found := ts.popTile()
		if !found {
			return nil
		}
		t, err := renderer.RenderTile(ctx, ts.cfg.Region, tile, ts.cfg.Width, ts.cfg.Height, ts.cfg.MaxIter)
		if err != nil {
			return fmt.Errorf("render of tile %s: %w", tile, err)
		}
		if err := ts.tileFinished(t); err != nil {
			return err
		}
		ts.logf("finished: %f", ts.finished())
	}
}

// run renders the whole grid with at most one worker per tile.
// The first worker error stops the others and is returned.
func (ts *tileScheduler) run(ctx context.Context, renderer TileRenderer, workers int) (*Grid, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	ts.m.Lock()
	workers = min(workers, len(ts.unstarted))
	ts.m.Unlock()

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			if err := ts.render(ctx, renderer); err != nil {
				cancel(err)
			}
		})
	}
	wg.Wait()

	if !ts.done() {
		return nil, fmt.Errorf("render: %w", context.Cause(ctx))
	}
	return ts.grid, nil
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
