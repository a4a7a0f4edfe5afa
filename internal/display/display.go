// SPDX-License-Identifier: MIT

// Package display delivers rendered frames to an output sink.
package display

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/rs/zerolog"
)

// Display receives rendered frames. Implementations must tolerate Show being
// called again after an error; one bad frame must not wedge the rotation.
type Display interface {
	// Name returns the driver name as registered.
	Name() string
	// Show delivers one frame to the sink.
	Show(ctx context.Context, frame *image.RGBA) error
	// Close releases the sink.
	Close() error
}

// Config carries per-driver settings; each driver reads what it needs.
type Config struct {
	// serial driver
	SerialPort string
	SerialBaud int

	// png driver
	FramePath string

	Logger zerolog.Logger
}

type constructor func(Config) (Display, error)

var drivers = map[string]constructor{
	"serial": newSerial,
	"png":    newPNGFile,
	"term":   newTerminal,
	"none":   newDiscard,
}

// New builds the display driver with the given name.
func New(name string, cfg Config) (Display, error) {
	ctor, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown display driver %q (have %v)", name, Names())
	}
	return ctor(cfg)
}

// Names lists the registered driver names, sorted.
func Names() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// discard drops every frame; used for API-only deployments.
type discard struct{}

func newDiscard(Config) (Display, error) { return discard{}, nil }

func (discard) Name() string                            { return "none" }
func (discard) Show(context.Context, *image.RGBA) error { return nil }
func (discard) Close() error                            { return nil }
