// SPDX-License-Identifier: MIT

package display

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
)

// terminal previews frames as ANSI truecolor half-blocks: each text row
// carries two pixel rows (upper via foreground, lower via background).
type terminal struct {
	out io.Writer
}

func newTerminal(Config) (Display, error) {
	return &terminal{out: os.Stdout}, nil
}

func (d *terminal) Name() string { return "term" }

func (d *terminal) Show(ctx context.Context, frame *image.RGBA) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(d.out, renderANSI(frame))
	return err
}

func (d *terminal) Close() error {
	// Leave the cursor below the frame.
	_, err := io.WriteString(d.out, "\x1b[0m\n")
	return err
}

// renderANSI converts a frame to an ANSI half-block string, homing the
// cursor first so successive frames draw in place.
func renderANSI(frame *image.RGBA) string {
	b := frame.Bounds()
	var sb strings.Builder
	sb.Grow(b.Dx() * b.Dy() * 12)

	sb.WriteString("\x1b[H")
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := frame.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = frame.RGBAAt(x, y+1)
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		sb.WriteString("\x1b[0m\n")
	}
	return sb.String()
}
