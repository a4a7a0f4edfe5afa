// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/courtside/scoreticker/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countColor(img *image.RGBA, want color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestNewFrameIsBlack(t *testing.T) {
	frame := NewFrame()
	require.Equal(t, FrameWidth, frame.Bounds().Dx())
	require.Equal(t, FrameHeight, frame.Bounds().Dy())

	black := color.RGBA{A: 0xFF}
	assert.Equal(t, FrameWidth*FrameHeight, countColor(frame, black))
}

func TestGameCardScheduledShowsVS(t *testing.T) {
	g := game.Game{
		League:      "NHL",
		HomeTeam:    "COL",
		AwayTeam:    "VGK",
		Status:      "1/11 9:00PM",
		IsScheduled: true,
	}
	frame := GameCard(g, nil, nil)

	// League label paints yellow, VS and status paint white, nothing is live
	// so no red or green appears.
	assert.Greater(t, countColor(frame, Yellow), 0, "league label")
	assert.Greater(t, countColor(frame, White), 0, "teams, VS, status")
	assert.Zero(t, countColor(frame, Green))
	assert.Zero(t, countColor(frame, Red))
}

func TestGameCardLiveUsesGreenScoreAndRedStatus(t *testing.T) {
	g := game.Game{
		League:    "NHL",
		HomeTeam:  "NYR",
		AwayTeam:  "PIT",
		HomeScore: "1",
		AwayScore: "1",
		Status:    "2nd 12:30",
		IsLive:    true,
	}
	frame := GameCard(g, nil, nil)

	assert.Greater(t, countColor(frame, Green), 0, "live score")
	assert.Greater(t, countColor(frame, Red), 0, "live status")
}

func TestGameCardFinalUsesWhiteScore(t *testing.T) {
	g := game.Game{
		League:    "NHL",
		HomeTeam:  "BOS",
		AwayTeam:  "MTL",
		HomeScore: "4",
		AwayScore: "2",
		Status:    "FINAL",
		IsFinal:   true,
	}
	frame := GameCard(g, nil, nil)

	assert.Zero(t, countColor(frame, Green))
	assert.Zero(t, countColor(frame, Red))
	assert.Greater(t, countColor(frame, White), 0)
}

func TestGameCardDrawsLogos(t *testing.T) {
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	logo := image.NewRGBA(image.Rect(0, 0, LogoSize, LogoSize))
	for y := 0; y < LogoSize; y++ {
		for x := 0; x < LogoSize; x++ {
			logo.SetRGBA(x, y, blue)
		}
	}

	g := game.Game{League: "NHL", HomeTeam: "BOS", AwayTeam: "MTL", IsScheduled: true, Status: "TBD"}
	frame := GameCard(g, logo, logo)

	// Logo corners land where displayio placed the tile grids.
	assert.Equal(t, blue, frame.RGBAAt(4, 4), "home logo top-left")
	assert.Equal(t, blue, frame.RGBAAt(92, 4), "away logo top-left")
	assert.Equal(t, blue, frame.RGBAAt(4+LogoSize-1, 4+LogoSize-1), "home logo bottom-right")
}

func TestGameCardLogoClippedToFrame(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 64, 64))
	g := game.Game{League: "NHL", HomeTeam: "BOS", AwayTeam: "MTL", IsScheduled: true, Status: "TBD"}

	assert.NotPanics(t, func() {
		GameCard(g, big, big)
	})
}

func TestStartupAndNoGamesCards(t *testing.T) {
	startup := StartupCard()
	assert.Greater(t, countColor(startup, Yellow), 0, "title")
	assert.Greater(t, countColor(startup, White), 0, "subtitle")

	noGames := NoGamesCard()
	assert.Greater(t, countColor(noGames, White), 0)
}

func TestDrawTextAnchoring(t *testing.T) {
	frame := NewFrame()
	drawText(frame, "X", White, anchorCenter, centerX, FrameHeight/2)

	// A centered one-character string must not paint in the outer quarters.
	for x := 0; x < FrameWidth/4; x++ {
		for y := 0; y < FrameHeight; y++ {
			assert.NotEqual(t, White, frame.RGBAAt(x, y))
		}
	}
}
