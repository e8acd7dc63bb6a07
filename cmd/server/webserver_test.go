package main

import (
	"context"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/ascii_mandel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestServer(t *testing.T, fp mandel.FrameProvider) (context.Context, *websocket.Conn) {
	t.Helper()

	srv := httptest.NewServer(webServer("", fp).Handler)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return ctx, c
}

func roundTrip(t *testing.T, ctx context.Context, c *websocket.Conn, req mandel.FrameRequest) mandel.FrameResponse {
	t.Helper()
	require.NoError(t, wsjson.Write(ctx, c, req))
	var resp mandel.FrameResponse
	require.NoError(t, wsjson.Read(ctx, c, &resp))
	return resp
}

// TestFrameServer_DefaultFrame compares a frame fetched over websocket with a local render.
func TestFrameServer_DefaultFrame(t *testing.T) {
	ctx, c := dialTestServer(t, mandel.LocalProvider{})

	resp := roundTrip(t, ctx, c, mandel.FrameRequest{})
	require.Empty(t, resp.Error)

	local, err := mandel.Run(ctx, mandel.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, local.Lines, resp.Lines)
	assert.GreaterOrEqual(t, resp.ElapsedSeconds, 0.0)
}

// TestFrameServer_ErrorKeepsConnection sends a bad request followed by a good one on the same connection.
func TestFrameServer_ErrorKeepsConnection(t *testing.T) {
	ctx, c := dialTestServer(t, mandel.LocalProvider{})

	resp := roundTrip(t, ctx, c, mandel.FrameRequest{Width: -4})
	assert.Contains(t, resp.Error, "invalid configuration")
	assert.Empty(t, resp.Lines)

	resp = roundTrip(t, ctx, c, mandel.FrameRequest{Width: 12, Height: 6, Region: "elephant", Workers: 2})
	require.Empty(t, resp.Error)
	require.Len(t, resp.Lines, 6)
	for _, l := range resp.Lines {
		assert.Len(t, l, 12)
	}
}

func TestFrameServer_PixelLimit(t *testing.T) {
	ctx, c := dialTestServer(t, frameLimiter{FrameProvider: mandel.LocalProvider{}, maxPixels: 100, maxWorkers: 2})

	resp := roundTrip(t, ctx, c, mandel.FrameRequest{Width: 20, Height: 10})
	assert.Contains(t, resp.Error, "exceeds the server limit")

	resp = roundTrip(t, ctx, c, mandel.FrameRequest{Width: 10, Height: 10})
	assert.Empty(t, resp.Error)
	assert.Len(t, resp.Lines, 10)
}

func TestFrameServer_WorkerLimit(t *testing.T) {
	ctx, c := dialTestServer(t, frameLimiter{FrameProvider: mandel.LocalProvider{}, maxPixels: 1 << 20, maxWorkers: 4})

	resp := roundTrip(t, ctx, c, mandel.FrameRequest{Width: 1, Height: 1, Workers: math.MaxInt})
	assert.Contains(t, resp.Error, "workers exceeds the server limit")
	assert.Empty(t, resp.Lines)

	resp = roundTrip(t, ctx, c, mandel.FrameRequest{Width: 8, Height: 4, Workers: 4})
	require.Empty(t, resp.Error)
	assert.Len(t, resp.Lines, 4)
}

// unreachableProvider fails the test if a request gets past the limiter.
type unreachableProvider struct{ t *testing.T }

func (up unreachableProvider) GetFrame(context.Context, mandel.Config) (mandel.Frame, error) {
	up.t.Errorf("request should have been refused")
	return mandel.Frame{}, nil
}

// TestFrameLimiter_HugeDimensions covers width*height values that wrap around int.
func TestFrameLimiter_HugeDimensions(t *testing.T) {
	fl := frameLimiter{FrameProvider: unreachableProvider{t}, maxPixels: 1 << 20, maxWorkers: 4}

	for _, dims := range [][2]int{{math.MaxInt, 2}, {2, math.MaxInt}, {math.MaxInt, math.MaxInt}, {1 << 20, 2}} {
		cfg := mandel.DefaultConfig()
		cfg.Width, cfg.Height = dims[0], dims[1]
		require.NoError(t, cfg.Validate())

		_, err := fl.GetFrame(context.Background(), cfg)
		assert.ErrorIs(t, err, mandel.ErrInvalidConfig, "%dx%d", dims[0], dims[1])
	}

	if math.MaxInt > math.MaxInt32 {
		shift := 32
		cfg := mandel.DefaultConfig()
		cfg.Width, cfg.Height = 1<<shift, 1<<shift
		_, err := fl.GetFrame(context.Background(), cfg)
		assert.ErrorIs(t, err, mandel.ErrInvalidConfig)
	}
}

func TestFrameLimiter_AtLimit(t *testing.T) {
	fl := frameLimiter{FrameProvider: mandel.LocalProvider{}, maxPixels: 100, maxWorkers: 2}
	cfg := mandel.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Workers = 25, 4, 2

	f, err := fl.GetFrame(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, f.Lines, 4)
}
