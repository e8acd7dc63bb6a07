package mandel

import "time"

// FrameRequest asks a frame server for one frame. Zero fields take DefaultConfig values.
type FrameRequest struct {
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	MaxIter *int   `json:"max_iter,omitempty"`
	Region  string `json:"region,omitempty"`
	Workers int    `json:"workers,omitempty"`
}

// FrameResponse carries either a rendered frame or the reason it was refused.
type FrameResponse struct {
	Lines          []string `json:"lines,omitempty"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	Error          string   `json:"error,omitempty"`
}

// Config resolves the request against DefaultConfig and validates it.
func (r FrameRequest) Config() (Config, error) {
	cfg := DefaultConfig()
	if r.Width != 0 {
		cfg.Width = r.Width
	}
	if r.Height != 0 {
		cfg.Height = r.Height
	}
	if r.MaxIter != nil {
		cfg.MaxIter = *r.MaxIter
	}
	if r.Workers != 0 {
		cfg.Workers = r.Workers
	}
	region, err := RegionByName(r.Region)
	if err != nil {
		return Config{}, err
	}
	cfg.Region = region

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFrameResponse packs f for the wire.
func NewFrameResponse(f Frame) FrameResponse {
	return FrameResponse{Lines: f.Lines, ElapsedSeconds: f.Elapsed.Seconds()}
}

// Frame unpacks a successful response.
func (r FrameResponse) Frame() Frame {
	return Frame{
		Lines:   r.Lines,
		Elapsed: time.Duration(r.ElapsedSeconds * float64(time.Second)),
	}
}
