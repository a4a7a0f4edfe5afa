// SPDX-License-Identifier: MIT

package display

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/google/renameio/v2"
)

// pngFile atomically replaces a PNG on every frame. Pointing a browser or a
// file watcher at the path gives a live view of the panels.
type pngFile struct {
	path string
}

func newPNGFile(cfg Config) (Display, error) {
	if cfg.FramePath == "" {
		return nil, fmt.Errorf("png display requires a frame path")
	}
	return &pngFile{path: cfg.FramePath}, nil
}

func (d *pngFile) Name() string { return "png" }

func (d *pngFile) Show(ctx context.Context, frame *image.RGBA) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	if err := renameio.WriteFile(d.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (d *pngFile) Close() error { return nil }
