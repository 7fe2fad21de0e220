package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/terrapoint/terrapoint/infrastructure/service/logger"
)

// CorrelationID ensures every request carries a correlation id, echoing it
// in the response header and threading it through the request context so
// log lines can be tied to the request.
func CorrelationID(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := r.Header.Get(header)
			if cid == "" {
				cid = generateCorrelationID()
			}
			w.Header().Set(header, cid)
			ctx := logger.WithCorrelationID(r.Context(), cid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func generateCorrelationID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
