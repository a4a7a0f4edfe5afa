// SPDX-License-Identifier: MIT

package display

import (
	"encoding/binary"
	"image"
)

// Frame wire format for the serial bridge: a fixed header followed by
// RGB565 pixels, row-major, big-endian. The controller firmware blits the
// payload straight into its double buffer.
var frameMagic = [4]byte{'M', 'T', 'X', '1'}

// EncodeFrame serializes a frame for the serial bridge.
func EncodeFrame(frame *image.RGBA) []byte {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()

	out := make([]byte, 0, 8+w*h*2)
	out = append(out, frameMagic[:]...)
	out = binary.BigEndian.AppendUint16(out, uint16(w))
	out = binary.BigEndian.AppendUint16(out, uint16(h))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			out = binary.BigEndian.AppendUint16(out, toRGB565(c.R, c.G, c.B))
		}
	}
	return out
}

// toRGB565 packs 8-bit channels into 5-6-5.
func toRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
