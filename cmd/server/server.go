package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime"

	mandel "github.com/marben/ascii_mandel"
)

// main is the entry point for the frame server.
// Each websocket client sends frame requests and receives rendered ASCII frames back.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", ":8080", "http listen address, websocket endpoint is /ws")
	maxPixels := flag.Int("maxpixels", 1<<20, "largest width*height a client may request")
	maxWorkers := flag.Int("maxworkers", runtime.NumCPU(), "most workers a client may request")
	flag.Parse()

	httpServer := webServer(*addr, frameLimiter{
		FrameProvider: mandel.LocalProvider{},
		maxPixels:     *maxPixels,
		maxWorkers:    *maxWorkers,
	})

	log.Printf("frame server waiting for websocket connections on %s/ws", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
