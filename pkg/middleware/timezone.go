package middleware

import (
	"net/http"

	"fitness-booking/pkg/timewindow"
	"fitness-booking/pkg/utils"
)

// Timezone resolves the client's tz query parameter once per request and
// stores the location in the context. Unknown or missing values resolve to
// UTC, never an error.
func Timezone() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := timewindow.ResolveLocation(r.URL.Query().Get("tz"))
			ctx := utils.WithLocation(r.Context(), loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
