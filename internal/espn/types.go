// SPDX-License-Identifier: MIT

package espn

// Wire types for the site API scoreboard payload. Only the fields the ticker
// consumes are mapped; the upstream document carries far more.

// ScoreboardResponse is the top-level scoreboard document.
type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

// Event is one game on the scoreboard.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []Competition `json:"competitions"`
	Status       EventStatus   `json:"status"`
}

// Competition holds the two competitors of an event.
type Competition struct {
	Competitors []Competitor `json:"competitors"`
}

// Competitor is one side of a competition. The upstream lists the home team
// first; HomeAway is authoritative when present.
type Competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     Team   `json:"team"`
}

// Team describes a competitor's team.
type Team struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Logo         string `json:"logo"`
}

// EventStatus wraps the status type object.
type EventStatus struct {
	Type StatusType `json:"type"`
}

// StatusType carries the machine status name and the human detail line.
type StatusType struct {
	Name        string `json:"name"`
	ShortDetail string `json:"shortDetail"`
}
