// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"net/http"
)

// adminKeyHeader carries the shared admin key on privileged requests.
const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey gates privileged routes behind a shared key. An empty
// configured key disables the gate; config.Load refuses that outside
// development, so production always runs with the check on.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" {
				got := r.Header.Get(adminKeyHeader)
				if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"error":"admin key required"}`))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
