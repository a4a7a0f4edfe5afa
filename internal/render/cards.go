// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/courtside/scoreticker/internal/game"
)

// Card layout. Logos are 32x32; the away panel starts at x=64.
const (
	LogoSize = 32

	homeLogoX = 4
	awayLogoX = 92
	logoY     = 4

	homeAbbrX = homeLogoX + LogoSize/2
	awayAbbrX = awayLogoX + LogoSize/2
	abbrY     = 38

	leagueY = 2
	scoreY  = 24
	statusY = FrameHeight - 2
	centerX = FrameWidth / 2
)

// GameCard renders one game as a full frame. Either logo may be nil; the
// card renders without it.
func GameCard(g game.Game, homeLogo, awayLogo image.Image) *image.RGBA {
	frame := NewFrame()

	drawLogo(frame, homeLogo, homeLogoX, logoY)
	drawLogo(frame, awayLogo, awayLogoX, logoY)

	drawText(frame, strings.ToUpper(g.League), Yellow, anchorTopCenter, centerX, leagueY)

	drawText(frame, g.HomeTeam, White, anchorTopCenter, homeAbbrX, abbrY)
	drawText(frame, g.AwayTeam, White, anchorTopCenter, awayAbbrX, abbrY)

	scoreText := "VS"
	scoreColor := White
	if !g.IsScheduled {
		scoreText = fmt.Sprintf("%s - %s", g.HomeScore, g.AwayScore)
		if g.IsLive {
			scoreColor = Green
		}
	}
	drawText(frame, scoreText, scoreColor, anchorCenter, centerX, scoreY)

	statusColor := White
	if g.IsLive {
		statusColor = Red
	}
	drawText(frame, g.Status, statusColor, anchorBottomCenter, centerX, statusY)

	return frame
}

// StartupCard is shown until the first refresh completes.
func StartupCard() *image.RGBA {
	frame := NewFrame()
	drawText(frame, "SPORTS TICKER", Yellow, anchorCenter, centerX, 20)
	drawText(frame, "Loading...", White, anchorCenter, centerX, 40)
	return frame
}

// NoGamesCard is shown when every configured league came back empty.
func NoGamesCard() *image.RGBA {
	frame := NewFrame()
	drawText(frame, "NO GAMES TODAY", White, anchorCenter, centerX, FrameHeight/2)
	return frame
}
