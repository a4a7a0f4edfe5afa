// SPDX-License-Identifier: MIT

package espn

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockServer provides a configurable scoreboard mock for testing.
type MockServer struct {
	*httptest.Server
	mu       sync.RWMutex
	events   map[string][]Event // league -> events
	failures map[string]int     // failures before success per league
	status   map[string]int     // forced HTTP status per league
}

// NewMockServer creates a scoreboard mock with realistic default data.
func NewMockServer() *MockServer {
	mock := &MockServer{
		events:   make(map[string][]Event),
		failures: make(map[string]int),
		status:   make(map[string]int),
	}
	mock.SetDefaultData()

	mux := http.NewServeMux()
	mux.HandleFunc("/apis/site/v2/sports/", mock.handleScoreboard)
	mock.Server = httptest.NewServer(mux)
	return mock
}

// SetDefaultData installs one league worth of games in every state the
// renderer cares about: final, live, and scheduled.
func (m *MockServer) SetDefaultData() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events["nhl"] = []Event{
		{
			ID:   "401559001",
			Date: "2026-01-11T00:00Z",
			Competitions: []Competition{{Competitors: []Competitor{
				{HomeAway: "home", Score: "4", Team: Team{Abbreviation: "BOS", DisplayName: "Boston Bruins", Logo: "https://cdn.example/bos.png"}},
				{HomeAway: "away", Score: "2", Team: Team{Abbreviation: "MTL", DisplayName: "Montréal Canadiens", Logo: "https://cdn.example/mtl.png"}},
			}}},
			Status: EventStatus{Type: StatusType{Name: "STATUS_FINAL", ShortDetail: "Final"}},
		},
		{
			ID:   "401559002",
			Date: "2026-01-11T23:30Z",
			Competitions: []Competition{{Competitors: []Competitor{
				{HomeAway: "home", Score: "1", Team: Team{Abbreviation: "NYR", DisplayName: "New York Rangers"}},
				{HomeAway: "away", Score: "1", Team: Team{Abbreviation: "PIT", DisplayName: "Pittsburgh Penguins"}},
			}}},
			Status: EventStatus{Type: StatusType{Name: "STATUS_IN_PROGRESS", ShortDetail: "2nd 12:30"}},
		},
		{
			ID:   "401559003",
			Date: "2026-01-12T02:00Z",
			Competitions: []Competition{{Competitors: []Competitor{
				{HomeAway: "home", Team: Team{Abbreviation: "COL", DisplayName: "Colorado Avalanche"}},
				{HomeAway: "away", Team: Team{Abbreviation: "VGK", DisplayName: "Vegas Golden Knights"}},
			}}},
			Status: EventStatus{Type: StatusType{Name: "STATUS_SCHEDULED", ShortDetail: "1/12 - 2:00 AM UTC"}},
		},
	}
}

// SetEvents replaces the canned events for a league.
func (m *MockServer) SetEvents(league string, events []Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[league] = events
}

// FailNext makes the next n requests for a league return HTTP 503.
func (m *MockServer) FailNext(league string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[league] = n
}

// ForceStatus makes every request for a league return the given HTTP status.
func (m *MockServer) ForceStatus(league string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status[league] = status
}

func (m *MockServer) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	league := leagueFromPath(r.URL.Path)
	if league == "" {
		http.NotFound(w, r)
		return
	}

	m.mu.Lock()
	if n := m.failures[league]; n > 0 {
		m.failures[league] = n - 1
		m.mu.Unlock()
		http.Error(w, "upstream exploded", http.StatusServiceUnavailable)
		return
	}
	forced := m.status[league]
	events, ok := m.events[league]
	m.mu.Unlock()

	if forced != 0 {
		http.Error(w, http.StatusText(forced), forced)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ScoreboardResponse{Events: events})
}

// leagueFromPath extracts the league segment from
// /apis/site/v2/sports/{sport}/{league}/scoreboard.
func leagueFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 7 || parts[6] != "scoreboard" {
		return ""
	}
	return parts[5]
}
