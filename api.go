package mandel

import (
	"context"
	"image"
)

// TileRenderer computes iteration counts for one tile of a width × height frame over r.
type TileRenderer interface {
	RenderTile(ctx context.Context, r Region, tile image.Rectangle, width, height, maxIter int) (Tile, error)
}

// FrameProvider returns a finished ASCII frame.
type FrameProvider interface {
	GetFrame(ctx context.Context, cfg Config) (Frame, error)
}
