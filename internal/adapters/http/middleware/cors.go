package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
)

// wildcard in AllowedOrigins or AllowedMethods allows every origin or method.
const wildcard = "*"

// CORS returns middleware applying the configured cross-origin policy.
//
// A "*" origin entry echoes the request Origin back instead of sending a
// literal wildcard, so credentialed browser requests from any origin work.
// A "*" method entry likewise allows whatever method the request asks for.
// Preflight requests are answered here and never reach route handlers.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	opts := corsOptions(cfg)
	policy := cors.New(opts)
	anyMethod := slices.Contains(cfg.AllowedMethods, wildcard)

	// go-chi/cors only matches listed methods, so a method outside the
	// list gets a policy of its own when the wildcard is configured.
	policyFor := func(r *http.Request) *cors.Cors {
		if !anyMethod {
			return policy
		}

		method := r.Method
		if requested := r.Header.Get("Access-Control-Request-Method"); r.Method == http.MethodOptions && requested != "" {
			method = requested
		}
		method = strings.ToUpper(method)

		if slices.Contains(opts.AllowedMethods, method) {
			return policy
		}

		perMethod := opts
		perMethod.AllowedMethods = append(slices.Clone(opts.AllowedMethods), method)

		return cors.New(perMethod)
	}

	return func(c *gin.Context) {
		passed := false

		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})

		policyFor(c.Request).Handler(next).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
		}
	}
}

func corsOptions(cfg *config.CORSConfig) cors.Options {
	opts := cors.Options{
		AllowedMethods:   listedMethods(cfg.AllowedMethods),
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if slices.Contains(cfg.AllowedOrigins, wildcard) {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		opts.AllowedOrigins = cfg.AllowedOrigins
	}

	return opts
}

// listedMethods upper-cases the configured methods and drops the wildcard.
// A wildcard alone still lists the methods the API serves.
func listedMethods(methods []string) []string {
	listed := make([]string, 0, len(methods))
	for _, m := range methods {
		if m != wildcard {
			listed = append(listed, strings.ToUpper(m))
		}
	}

	if len(listed) == 0 && slices.Contains(methods, wildcard) {
		listed = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodHead, http.MethodOptions}
	}

	return listed
}
