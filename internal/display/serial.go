// SPDX-License-Identifier: MIT

package display

import (
	"context"
	"fmt"
	"image"
	"io"

	"go.bug.st/serial"
)

// serialDisplay streams frames to a matrix controller board over a serial
// port. The board side acks nothing; flow control is the baud rate.
type serialDisplay struct {
	port io.WriteCloser
	name string
}

func newSerial(cfg Config) (Display, error) {
	if cfg.SerialPort == "" {
		return nil, fmt.Errorf("serial display requires a port")
	}
	baud := cfg.SerialBaud
	if baud <= 0 {
		baud = 921600
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.SerialPort, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.SerialPort, err)
	}

	cfg.Logger.Info().
		Str("event", "display.serial.open").
		Str("port", cfg.SerialPort).
		Int("baud", baud).
		Msg("serial display opened")

	return &serialDisplay{port: port, name: "serial"}, nil
}

func (d *serialDisplay) Name() string { return d.name }

func (d *serialDisplay) Show(ctx context.Context, frame *image.RGBA) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload := EncodeFrame(frame)
	n, err := d.port.Write(payload)
	if err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if n != len(payload) {
		return fmt.Errorf("serial short write: %d of %d bytes", n, len(payload))
	}
	return nil
}

func (d *serialDisplay) Close() error {
	return d.port.Close()
}
