package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = `x-request-id`

type ctxKeyRequestID struct{}

// RequestID returns the id attached by RequestIDLoggerMiddleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// RequestIDLoggerMiddleware tags each request with an id, logs its outcome
// and turns handler panics into a 500.
func RequestIDLoggerMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)
			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, reqID)
			srw := &statusRecorder{ResponseWriter: w}

			start := time.Now()
			defer func() {
				status := srw.status
				if status == 0 {
					status = http.StatusOK
				}
				entry := logger.WithFields(log.Fields{
					`method`:     r.Method,
					`path`:       r.URL.Path,
					`status`:     status,
					`request_id`: reqID,
					`duration`:   time.Since(start).String(),
				})

				if rec := recover(); rec != nil {
					entry = entry.WithFields(log.Fields{
						`error`:  fmt.Sprintf(`%v`, rec),
						`stack`:  string(debug.Stack()),
						`status`: http.StatusInternalServerError,
					})
					entry.Error(`panic recovered`)
					srw.Header().Set(`Content-Type`, `application/json`)
					srw.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(srw).Encode(map[string]string{
						`error`:      `internal server error`,
						`request_id`: reqID,
					})
				} else if status >= 400 {
					entry.Error(`request completed with error status`)
				} else {
					entry.Debug(`request completed`)
				}
			}()

			next.ServeHTTP(srw, r.WithContext(ctx))
		})
	}
}
