// SPDX-License-Identifier: MIT

package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/courtside/scoreticker/internal/log"
)

// authMiddleware enforces bearer token authentication on mutating endpoints.
// An empty token fails closed unless anonymous access is explicitly enabled.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		token := s.cfg.APIToken
		anonymous := s.cfg.AuthAnonymous
		s.mu.RUnlock()

		if token == "" {
			if anonymous {
				next.ServeHTTP(w, r)
				return
			}
			log.FromContext(r.Context()).Error().
				Str("event", "auth.fail_closed").
				Msg("no api token configured and anonymous auth disabled, denying access")
			writeUnauthorized(w)
			return
		}

		reqToken := extractBearer(r)
		if reqToken == "" {
			log.FromContext(r.Context()).Warn().
				Str("event", "auth.missing_header").
				Msg("authorization header missing")
			writeUnauthorized(w)
			return
		}

		if subtle.ConstantTimeCompare([]byte(reqToken), []byte(token)) != 1 {
			log.FromContext(r.Context()).Warn().
				Str("event", "auth.invalid_token").
				Msg("invalid api token")
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}
