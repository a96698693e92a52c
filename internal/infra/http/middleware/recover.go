package middleware

import (
	"encoding/json"
	"log"
	"net/http"
)

// Recover converts panics anywhere in the stack into the API's JSON
// error envelope instead of a dropped connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[PANIC] %s %s: %v", r.Method, r.URL.Path, rec)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   "Internal Server Error",
					"message": "Something went wrong, please try again later",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
