package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var stripNewlines = strings.NewReplacer("\n", "", "\r", "").Replace

// Logger writes one line per request: method, path, status, duration and,
// when chi's RequestID middleware ran first, the request ID.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		line := stripNewlines(r.Method) + " " + stripNewlines(r.URL.Path)
		if id := chimw.GetReqID(r.Context()); id != "" {
			line += " [" + stripNewlines(id) + "]"
		}
		//nolint:gosec // G706: user-supplied values have CR/LF stripped.
		log.Printf("%s %d %s", line, wrapped.statusCode, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
