package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/peerpods-dev/peerpods/internal/setup"
	mw "github.com/peerpods-dev/peerpods/shared/middleware"
	"github.com/peerpods-dev/peerpods/shared/middleware/metrics"
	rl "github.com/peerpods-dev/peerpods/shared/middleware/ratelimiter"
)

// New creates and configures a new mux router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit request for all endpoints combined in that subrouter
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{"http://localhost:8081"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))

	// JSON API only, no scripts/styles needed
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, apiCSP))
	r.Use(mw.RequestId)
	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes
	auth := v1.PathPrefix("/auth").Subrouter()

	authRegister := auth.NewRoute().Subrouter()
	authRegister.Use(mw.RateLimit(rl.New(1.0/10, 2, 1*time.Hour), mw.GetIP)) // 1 per 10s by IP
	authRegister.Use(mw.GlobalRateLimit(rl.Rps10()))
	authRegister.HandleFunc("/register", h.Register).Methods("POST")

	authLogin := auth.NewRoute().Subrouter()
	authLogin.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP)) // 1 per second by IP
	authLogin.Use(mw.GlobalRateLimit(rl.Rps100()))
	authLogin.HandleFunc("/login", h.Login).Methods("POST")

	auth.HandleFunc("/logout", h.Logout).Methods("POST")

	// Public pod browsing
	v1.HandleFunc("/pods", h.ListPods).Methods("GET")
	v1.HandleFunc("/pods/{pod}", h.GetPod).Methods("GET")
	v1.HandleFunc("/pods/{pod}/messages", h.GetPodMessages).Methods("GET")

	// Logged-in user routes
	loggedIn := v1.NewRoute().Subrouter()
	loggedIn.Use(authMw.NeedAuth())
	loggedIn.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIDFromContext)) // 100 RPS per user

	loggedIn.HandleFunc("/users/me", h.Me).Methods("GET")
	loggedIn.HandleFunc("/users/me/bio", h.UpdateBio).Methods("PUT")
	loggedIn.HandleFunc("/users/me/pods", h.MyPods).Methods("GET")

	// Recommendations hit the embedding provider: 10 RPS per user
	loggedIn.Handle("/users/me/recommended", mw.RateLimit(rl.Rps10(), mw.GetUserIDFromContext)(http.HandlerFunc(h.Recommended))).Methods("GET")

	// CreatePod: 1 per minute per user
	loggedIn.Handle("/pods", mw.RateLimit(rl.OnceInMinute(), mw.GetUserIDFromContext)(http.HandlerFunc(h.CreatePod))).Methods("POST")

	// CreateMessage: 1 per second per user
	loggedIn.Handle("/pods/{pod}/messages", mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDFromContext)(http.HandlerFunc(h.CreateMessage))).Methods("POST")

	return r
}
