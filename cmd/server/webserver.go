package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/ascii_mandel"
)

// webServer creates http server with the websocket frame endpoint at /ws
func webServer(addr string, fp mandel.FrameProvider) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(fp))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// websocketHandler handles the http ws endpoint
// every request message read from the connection is answered with one response message
func websocketHandler(fp mandel.FrameProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		if err := serveFrames(r.Context(), c, fp); err != nil {
			log.Printf("err: client %q: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}

func serveFrames(ctx context.Context, c *websocket.Conn, fp mandel.FrameProvider) error {
	for {
		var req mandel.FrameRequest
		if err := wsjson.Read(ctx, c, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}

		if err := wsjson.Write(ctx, c, frameResponse(ctx, fp, req)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// frameResponse renders req, reporting configuration and render failures inside the response
func frameResponse(ctx context.Context, fp mandel.FrameProvider, req mandel.FrameRequest) mandel.FrameResponse {
	cfg, err := req.Config()
	if err != nil {
		return mandel.FrameResponse{Error: err.Error()}
	}

	f, err := fp.GetFrame(ctx, cfg)
	if err != nil {
		return mandel.FrameResponse{Error: err.Error()}
	}
	return mandel.NewFrameResponse(f)
}

// frameLimiter refuses frames larger than maxPixels or asking for more than maxWorkers
// before they reach the wrapped provider
type frameLimiter struct {
	mandel.FrameProvider
	maxPixels  int
	maxWorkers int
}

func (fl frameLimiter) GetFrame(ctx context.Context, cfg mandel.Config) (mandel.Frame, error) {
	// Height is positive after Validate; dividing keeps huge requests from overflowing.
	if cfg.Height <= 0 || cfg.Width > fl.maxPixels/cfg.Height {
		return mandel.Frame{}, fmt.Errorf("%w: %dx%d exceeds the server limit of %d pixels",
			mandel.ErrInvalidConfig, cfg.Width, cfg.Height, fl.maxPixels)
	}
	if cfg.Workers > fl.maxWorkers {
		return mandel.Frame{}, fmt.Errorf("%w: %d workers exceeds the server limit of %d",
			mandel.ErrInvalidConfig, cfg.Workers, fl.maxWorkers)
	}
	return fl.FrameProvider.GetFrame(ctx, cfg)
}
