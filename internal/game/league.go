// SPDX-License-Identifier: MIT

package game

import (
	"fmt"
	"strings"
)

// League pairs the sport path segment with the league path segment used by
// the scoreboard API, e.g. football/nfl.
type League struct {
	Sport string `json:"sport" yaml:"sport"`
	Name  string `json:"league" yaml:"league"`
}

func (l League) String() string { return l.Name }

// Label is the uppercase league name shown at the top of a game card.
func (l League) Label() string { return strings.ToUpper(l.Name) }

// DefaultLeagues is the out-of-the-box rotation order.
var DefaultLeagues = []League{
	{Sport: "football", Name: "nfl"},
	{Sport: "baseball", Name: "mlb"},
	{Sport: "hockey", Name: "nhl"},
	{Sport: "basketball", Name: "nba"},
}

var knownSports = map[string]string{
	"nfl":  "football",
	"mlb":  "baseball",
	"nhl":  "hockey",
	"nba":  "basketball",
	"wnba": "basketball",
	"mls":  "soccer",
}

// LeagueByName resolves a league identifier to its sport path segment.
func LeagueByName(name string) (League, error) {
	sport, ok := knownSports[name]
	if !ok {
		return League{}, fmt.Errorf("unknown league %q", name)
	}
	return League{Sport: sport, Name: name}, nil
}
