package mandel

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Frame is a rendered picture together with the time it took to produce.
type Frame struct {
	Lines   []string
	Elapsed time.Duration
}

// Run computes and renders one frame. Nothing is rendered before the grid is complete.
func Run(ctx context.Context, cfg Config) (Frame, error) {
	start := time.Now()

	g, err := Compute(ctx, cfg)
	if err != nil {
		return Frame{}, err
	}
	lines := Render(g)

	return Frame{Lines: lines, Elapsed: time.Since(start)}, nil
}

// LocalProvider renders frames in process.
type LocalProvider struct{}

func (LocalProvider) GetFrame(ctx context.Context, cfg Config) (Frame, error) {
	return Run(ctx, cfg)
}

var _ FrameProvider = LocalProvider{}

// TimingLine formats d as "<label> Execution Time: <seconds> seconds".
func TimingLine(label string, d time.Duration) string {
	return fmt.Sprintf("%s Execution Time: %.4f seconds", label, d.Seconds())
}

// WriteFrame writes the frame, a blank line and the timing line.
func WriteFrame(w io.Writer, label string, f Frame) error {
	if err := WriteLines(w, f.Lines); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", TimingLine(label, f.Elapsed)); err != nil {
		return fmt.Errorf("write timing: %w", err)
	}
	return nil
}
