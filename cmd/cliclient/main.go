// cliclient asks a frame server for one ASCII Mandelbrot frame over websocket and prints it.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/ascii_mandel"
)

// main is the entry point for the CLI client.
func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	def := mandel.DefaultConfig()
	addr := flag.String("addr", "localhost:8080", "frame server address")
	width := flag.Int("width", def.Width, "frame width in characters")
	height := flag.Int("height", def.Height, "frame height in lines")
	maxIter := flag.Int("maxiter", def.MaxIter, "iteration budget per point")
	region := flag.String("region", "default", "region name")
	workers := flag.Int("workers", def.Workers, "workers the server should use")
	timeout := flag.Duration("timeout", 30*time.Second, "give up after this long")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	req := mandel.FrameRequest{
		Width:   *width,
		Height:  *height,
		MaxIter: maxIter,
		Region:  *region,
		Workers: *workers,
	}
	frame, err := requestFrame(ctx, "ws://"+*addr+"/ws", req)
	if err != nil {
		return err
	}

	return mandel.WriteFrame(os.Stdout, "Remote", frame)
}

// requestFrame dials the server, sends req and waits for the matching response.
func requestFrame(ctx context.Context, url string, req mandel.FrameRequest) (mandel.Frame, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return mandel.Frame{}, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(responseReadLimit(req))

	if err := wsjson.Write(ctx, c, req); err != nil {
		return mandel.Frame{}, fmt.Errorf("send request: %w", err)
	}

	var resp mandel.FrameResponse
	if err := wsjson.Read(ctx, c, &resp); err != nil {
		return mandel.Frame{}, fmt.Errorf("read response: %w", err)
	}
	if resp.Error != "" {
		return mandel.Frame{}, errors.New("server: " + resp.Error)
	}

	c.Close(websocket.StatusNormalClosure, "")
	return resp.Frame(), nil
}

// responseReadLimit sizes the websocket read limit for the response to req: one byte per
// cell, a few bytes of JSON per line and room for the envelope or an error message.
func responseReadLimit(req mandel.FrameRequest) int64 {
	const envelope = 32 << 10

	cfg, err := req.Config()
	if err != nil {
		return envelope
	}
	w, h := int64(cfg.Width), int64(cfg.Height)
	if w > (math.MaxInt64-envelope)/h-4 {
		return math.MaxInt64
	}
	return w*h + 4*h + envelope
}
