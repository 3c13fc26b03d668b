package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options
type CORSConfig struct {
	Origins     []string
	Methods     []string
	Credentials bool
	MaxAge      int
}

// DefaultCORSConfig allows every origin, every method and every request
// header, with credentials.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Origins:     []string{"*"},
		Methods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		Credentials: true,
		MaxAge:      600,
	}
}

// CORS creates CORS middleware allowing the given origins.
func CORS(origins ...string) func(http.Handler) http.Handler {
	config := DefaultCORSConfig()
	if len(origins) > 0 {
		config.Origins = origins
	}
	return CORSWithConfig(config)
}

// CORSWithConfig creates CORS middleware with full configuration.
// Preflight requests (OPTIONS carrying Access-Control-Request-Method) are
// answered with 204 and never reach the router.
func CORSWithConfig(config CORSConfig) func(http.Handler) http.Handler {
	allowAll := false
	for _, origin := range config.Origins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	methods := strings.Join(config.Methods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqOrigin := r.Header.Get("Origin")
			preflight := r.Method == http.MethodOptions &&
				r.Header.Get("Access-Control-Request-Method") != ""

			allowed := reqOrigin != "" && (allowAll || containsOrigin(config.Origins, reqOrigin))
			if allowed {
				h := w.Header()
				h.Add("Vary", "Origin")
				// Browsers reject "*" together with credentials, so the
				// caller's origin is echoed instead.
				if allowAll && !config.Credentials {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", reqOrigin)
				}
				if config.Credentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}

				if preflight {
					h.Set("Access-Control-Allow-Methods", methods)
					if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
						h.Set("Access-Control-Allow-Headers", reqHeaders)
					}
					if config.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
					}
				}
			}

			if preflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func containsOrigin(origins []string, origin string) bool {
	for _, o := range origins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
