// SPDX-License-Identifier: MIT

package jobs

import (
	"testing"

	"github.com/courtside/scoreticker/internal/espn"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nhl = game.League{Sport: "hockey", Name: "nhl"}

func TestParseEventsSkipsMalformed(t *testing.T) {
	events := []espn.Event{
		{ID: "empty"},
		{ID: "one-sided", Competitions: []espn.Competition{{Competitors: []espn.Competitor{
			{HomeAway: "home", Team: espn.Team{Abbreviation: "BOS"}},
		}}}},
		{ID: "no-abbr", Competitions: []espn.Competition{{Competitors: []espn.Competitor{
			{HomeAway: "home"},
			{HomeAway: "away", Team: espn.Team{Abbreviation: "MTL"}},
		}}}},
		{ID: "ok", Competitions: []espn.Competition{{Competitors: []espn.Competitor{
			{HomeAway: "home", Score: "2", Team: espn.Team{Abbreviation: "BOS"}},
			{HomeAway: "away", Score: "1", Team: espn.Team{Abbreviation: "MTL"}},
		}}}, Status: espn.EventStatus{Type: espn.StatusType{Name: "STATUS_FINAL"}}},
	}

	games := ParseEvents(nhl, events, testTZ)
	require.Len(t, games, 1)
	assert.Equal(t, "ok", games[0].EventID)
}

func TestPickSidesFallsBackToListOrder(t *testing.T) {
	ev := espn.Event{
		ID: "no-markers",
		Competitions: []espn.Competition{{Competitors: []espn.Competitor{
			{Score: "3", Team: espn.Team{Abbreviation: "HOM"}},
			{Score: "2", Team: espn.Team{Abbreviation: "AWY"}},
		}}},
		Status: espn.EventStatus{Type: espn.StatusType{Name: "STATUS_IN_PROGRESS", ShortDetail: "3rd 1:00"}},
	}

	games := ParseEvents(nhl, []espn.Event{ev}, testTZ)
	require.Len(t, games, 1)
	assert.Equal(t, "HOM", games[0].HomeTeam)
	assert.Equal(t, "AWY", games[0].AwayTeam)
	assert.Equal(t, "3", games[0].HomeScore)
}

func TestParseEventBadDateIsNotFatal(t *testing.T) {
	ev := espn.Event{
		ID:   "bad-date",
		Date: "yesterday-ish",
		Competitions: []espn.Competition{{Competitors: []espn.Competitor{
			{HomeAway: "home", Team: espn.Team{Abbreviation: "COL"}},
			{HomeAway: "away", Team: espn.Team{Abbreviation: "VGK"}},
		}}},
		Status: espn.EventStatus{Type: espn.StatusType{Name: "STATUS_SCHEDULED"}},
	}

	games := ParseEvents(nhl, []espn.Event{ev}, testTZ)
	require.Len(t, games, 1)
	assert.True(t, games[0].StartTime.IsZero())
	assert.Equal(t, "TBD", games[0].Status, "unparseable start renders as TBD")
}
