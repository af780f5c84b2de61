package chi

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ReasonRateLimited is reported to the Recorder for throttled calls
const ReasonRateLimited = "rate_limited"

// rateLimit answers 429 once the process-wide token bucket is empty
func rateLimit(limiter *rate.Limiter, recorder Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				recorder.RecordRejected(r.Context(), ReasonRateLimited)
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
