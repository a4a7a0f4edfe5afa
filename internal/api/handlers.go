// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/courtside/scoreticker/internal/espn"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/history"
	"github.com/courtside/scoreticker/internal/jobs"
	"github.com/courtside/scoreticker/internal/log"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.cfg.Version,
	})
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		writeError(w, http.StatusServiceUnavailable, "waiting for first refresh")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type statusResponse struct {
	jobs.Status
	Version       string     `json:"version"`
	Display       string     `json:"display"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	Breaker       string     `json:"breaker,omitempty"`
	CurrentGame   *game.Game `json:"current_game,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{
		Version:       s.cfg.Version,
		Display:       s.cfg.Display,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	if s.cfg.BreakerState != nil {
		resp.Breaker = s.cfg.BreakerState()
	}
	if s.deps.Status != nil {
		resp.Status = s.deps.Status()
	}
	if s.deps.Board != nil {
		_, resp.CurrentGame = s.deps.Board.Current()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games := []game.Game{}
	if s.deps.Board != nil {
		games = s.deps.Board.Games()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(games),
		"games": games,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.History == nil {
		writeNotFound(w)
		return
	}

	league := r.URL.Query().Get("league")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := s.deps.History.Recent(r.Context(), league, limit)
	if err != nil {
		log.FromContext(r.Context()).Error().
			Err(err).
			Str("event", "history.query_failed").
			Msg("history lookup failed")
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.deps.Refresh == nil {
		writeError(w, http.StatusServiceUnavailable, "refresh not available")
		return
	}
	if !s.refreshing.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "refresh already in progress")
		return
	}
	defer s.refreshing.Store(false)

	status, err := s.deps.Refresh(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error().
			Err(err).
			Str("event", "refresh.manual_failed").
			Msg("manual refresh failed")
		code := http.StatusBadGateway
		if errors.Is(err, espn.ErrCircuitOpen) {
			code = http.StatusServiceUnavailable
		}
		writeError(w, code, "refresh failed: upstream unavailable")
		return
	}
	s.ready.Store(true)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Board == nil {
		writeNotFound(w)
		return
	}
	frame, _ := s.deps.Board.Current()
	if frame == nil {
		writeNotFound(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_ = png.Encode(w, frame)
}
