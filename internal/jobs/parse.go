// SPDX-License-Identifier: MIT

// Package jobs runs the scoreboard refresh cycle: fetch, parse, cache,
// snapshot, archive.
package jobs

import (
	"time"

	"github.com/courtside/scoreticker/internal/espn"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/log"
	"github.com/courtside/scoreticker/internal/metrics"
)

// ParseEvents flattens scoreboard events into games. Malformed events are
// skipped and counted, never fatal: one broken entry must not take down the
// whole board.
func ParseEvents(league game.League, events []espn.Event, tz game.Timezone) []game.Game {
	logger := log.WithComponent("jobs")

	games := make([]game.Game, 0, len(events))
	for _, ev := range events {
		g, ok := parseEvent(league, ev, tz)
		if !ok {
			metrics.IncParseError(league.Name)
			logger.Warn().
				Str("event", "parse.skipped").
				Str("league", league.Name).
				Str("event_id", ev.ID).
				Msg("skipping malformed scoreboard event")
			continue
		}
		games = append(games, g)
	}
	return games
}

func parseEvent(league game.League, ev espn.Event, tz game.Timezone) (game.Game, bool) {
	if len(ev.Competitions) == 0 || len(ev.Competitions[0].Competitors) < 2 {
		return game.Game{}, false
	}
	home, away := pickSides(ev.Competitions[0].Competitors)
	if home.Team.Abbreviation == "" || away.Team.Abbreviation == "" {
		return game.Game{}, false
	}

	start, err := game.ParseEventTime(ev.Date)
	if err != nil {
		start = time.Time{}
	}

	statusName := ev.Status.Type.Name
	g := game.Game{
		League:      league.Label(),
		EventID:     ev.ID,
		HomeTeam:    home.Team.Abbreviation,
		AwayTeam:    away.Team.Abbreviation,
		HomeName:    home.Team.DisplayName,
		AwayName:    away.Team.DisplayName,
		HomeScore:   scoreOrZero(home.Score),
		AwayScore:   scoreOrZero(away.Score),
		HomeLogoURL: home.Team.Logo,
		AwayLogoURL: away.Team.Logo,
		Status:      game.DisplayStatus(statusName, ev.Status.Type.ShortDetail, start, tz),
		IsFinal:     game.IsFinalStatus(statusName),
		IsLive:      game.IsLiveStatus(statusName),
		IsScheduled: game.IsScheduledStatus(statusName),
		StartTime:   start,
	}
	return g, true
}

// pickSides resolves home and away by the homeAway marker, falling back to
// list order (home first) when the marker is absent.
func pickSides(competitors []espn.Competitor) (home, away espn.Competitor) {
	home, away = competitors[0], competitors[1]
	for _, c := range competitors {
		switch c.HomeAway {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	return home, away
}

func scoreOrZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
