package ratelimit

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

// PerIP allows n requests per minute from one client address. Rejected
// requests get a JSON 429.
func PerIP(n int) func(http.Handler) http.Handler {
	return httprate.Limit(n, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, map[string]string{"error": http.StatusText(http.StatusTooManyRequests)})
		}),
	)
}
