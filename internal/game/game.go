// SPDX-License-Identifier: MIT

// Package game holds the domain model for scoreboard games.
package game

import (
	"time"
)

// Upstream status identifiers as delivered by the scoreboard API.
const (
	statusFinal      = "STATUS_FINAL"
	statusInProgress = "STATUS_IN_PROGRESS"
	statusScheduled  = "STATUS_SCHEDULED"
	statusPostponed  = "STATUS_POSTPONED"
	statusCanceled   = "STATUS_CANCELED"
)

// Game is one scoreboard entry, flattened for display and serving.
type Game struct {
	League      string    `json:"league"`
	EventID     string    `json:"event_id"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomeName    string    `json:"home_name,omitempty"`
	AwayName    string    `json:"away_name,omitempty"`
	HomeScore   string    `json:"home_score"`
	AwayScore   string    `json:"away_score"`
	HomeLogoURL string    `json:"-"`
	AwayLogoURL string    `json:"-"`
	Status      string    `json:"status"`
	IsFinal     bool      `json:"is_final"`
	IsLive      bool      `json:"is_live"`
	IsScheduled bool      `json:"is_scheduled"`
	StartTime   time.Time `json:"start_time,omitempty"`
}

// DisplayStatus maps an upstream status name to the string shown on the
// bottom line of a game card. Scheduled games show their local start time.
func DisplayStatus(statusName, shortDetail string, start time.Time, tz Timezone) string {
	switch statusName {
	case statusFinal:
		return "FINAL"
	case statusInProgress:
		// e.g. "Q3 5:42" or "2nd 12:30"
		return shortDetail
	case statusScheduled:
		return FormatLocal(start, tz)
	case statusPostponed:
		return "POSTPONED"
	case statusCanceled:
		return "CANCELED"
	default:
		if shortDetail != "" {
			return shortDetail
		}
		return "SCHEDULED"
	}
}

// IsFinalStatus reports whether the upstream status name marks a finished game.
func IsFinalStatus(statusName string) bool { return statusName == statusFinal }

// IsLiveStatus reports whether the upstream status name marks a running game.
func IsLiveStatus(statusName string) bool { return statusName == statusInProgress }

// IsScheduledStatus reports whether the upstream status name marks an
// unstarted game.
func IsScheduledStatus(statusName string) bool { return statusName == statusScheduled }
