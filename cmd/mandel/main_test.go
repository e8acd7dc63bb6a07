package main

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	mandel "github.com/marben/ascii_mandel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timingRe = regexp.MustCompile(`^Go Execution Time: \d+\.\d{4} seconds$`)

// TestRun_DefaultOutput checks the layout of the default invocation:
// 40 lines of 80 characters, a blank line, then the timing line.
func TestRun_DefaultOutput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 42)
	for i, l := range lines[:40] {
		assert.Len(t, l, 80, "line %d", i)
	}
	assert.Empty(t, lines[40])
	assert.Regexp(t, timingRe, lines[41])

	g, err := mandel.Compute(context.Background(), mandel.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, mandel.Render(g), lines[:40])
}

func TestRun_Flags(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-width", "10", "-height", "4", "-maxiter", "30", "-workers", "3", "-tilerows", "1", "-label", "Test"}
	require.NoError(t, run(context.Background(), args, &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Len(t, lines[0], 10)
	assert.True(t, strings.HasPrefix(lines[5], "Test Execution Time: "))
}

func TestRun_InvalidConfigWritesNothing(t *testing.T) {
	for _, args := range [][]string{
		{"-width", "0"},
		{"-height", "-2"},
		{"-maxiter", "-1"},
		{"-region", "nowhere"},
	} {
		var out bytes.Buffer
		err := run(context.Background(), args, &out)
		assert.ErrorIs(t, err, mandel.ErrInvalidConfig, "%v", args)
		assert.Zero(t, out.Len())
	}
}

func TestRun_UnexpectedArgs(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"extra"}, &out))
}

// slowWriter delays every write so the time spent printing shows up in the timing line.
type slowWriter struct {
	bytes.Buffer
	delay time.Duration
}

func (sw *slowWriter) Write(p []byte) (int, error) {
	time.Sleep(sw.delay)
	return sw.Buffer.Write(p)
}

func TestRun_TimingIncludesOutput(t *testing.T) {
	out := &slowWriter{delay: 10 * time.Millisecond}
	require.NoError(t, run(context.Background(), []string{"-width", "4", "-height", "20"}, out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 22)
	secs := strings.TrimSuffix(strings.TrimPrefix(lines[21], "Go Execution Time: "), " seconds")
	v, err := strconv.ParseFloat(secs, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.2, "20 lines written at 10ms each")
}
