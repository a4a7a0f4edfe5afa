// SPDX-License-Identifier: MIT

package display

import (
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/courtside/scoreticker/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownDriver(t *testing.T) {
	_, err := New("hologram", Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hologram")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"none", "png", "serial", "term"}, Names())
}

func TestDiscardDriver(t *testing.T) {
	d, err := New("none", Config{})
	require.NoError(t, err)
	assert.Equal(t, "none", d.Name())
	assert.NoError(t, d.Show(context.Background(), render.NewFrame()))
	assert.NoError(t, d.Close())
}

func TestEncodeFrameHeaderAndPixels(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	frame.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})          // pure red
	frame.SetRGBA(1, 0, color.RGBA{G: 0xFF, A: 0xFF})          // pure green
	frame.SetRGBA(0, 1, color.RGBA{B: 0xFF, A: 0xFF})          // pure blue
	frame.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // white

	out := EncodeFrame(frame)
	require.Len(t, out, 8+4*2)

	assert.Equal(t, []byte("MTX1"), out[:4])
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(out[4:6]))
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(out[6:8]))

	px := func(i int) uint16 { return binary.BigEndian.Uint16(out[8+2*i:]) }
	assert.Equal(t, uint16(0xF800), px(0), "red")
	assert.Equal(t, uint16(0x07E0), px(1), "green")
	assert.Equal(t, uint16(0x001F), px(2), "blue")
	assert.Equal(t, uint16(0xFFFF), px(3), "white")
}

func TestEncodeFrameFullSize(t *testing.T) {
	out := EncodeFrame(render.NewFrame())
	assert.Len(t, out, 8+render.FrameWidth*render.FrameHeight*2)
}

func TestPNGFileDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	d, err := New("png", Config{FramePath: path})
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	frame := render.NewFrame()
	frame.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	require.NoError(t, d.Show(context.Background(), frame))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, render.FrameWidth, decoded.Bounds().Dx())
}

func TestPNGFileRequiresPath(t *testing.T) {
	_, err := New("png", Config{})
	assert.Error(t, err)
}

func TestSerialRequiresPort(t *testing.T) {
	_, err := New("serial", Config{})
	assert.Error(t, err)
}

func TestSerialShowWritesFullPayload(t *testing.T) {
	var sink writeSink
	d := &serialDisplay{port: &sink, name: "serial"}

	frame := render.NewFrame()
	require.NoError(t, d.Show(context.Background(), frame))
	assert.Len(t, sink.data, 8+render.FrameWidth*render.FrameHeight*2)
	assert.Equal(t, "MTX1", string(sink.data[:4]))

	require.NoError(t, d.Close())
	assert.True(t, sink.closed)
}

func TestSerialShowRespectsContext(t *testing.T) {
	var sink writeSink
	d := &serialDisplay{port: &sink, name: "serial"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, d.Show(ctx, render.NewFrame()))
	assert.Empty(t, sink.data)
}

type writeSink struct {
	data   []byte
	closed bool
}

func (w *writeSink) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *writeSink) Close() error {
	w.closed = true
	return nil
}

func TestTerminalRendering(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	frame.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})

	out := renderANSI(frame)
	assert.True(t, strings.HasPrefix(out, "\x1b[H"), "homes the cursor")
	assert.Contains(t, out, "\x1b[38;2;255;0;0m", "red upper pixel")
	assert.Equal(t, 1, strings.Count(out, "\n"), "two pixel rows collapse to one text row")

	var sb strings.Builder
	d := &terminal{out: &sb}
	require.NoError(t, d.Show(context.Background(), frame))
	assert.Equal(t, out, sb.String())
	require.NoError(t, d.Close())
}
