package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/db"
	"github.com/jobdeck/jobdeck/internal/jobs"
	"github.com/jobdeck/jobdeck/internal/repository/sqlite"
	"github.com/jobdeck/jobdeck/internal/validate"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.Use(NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Handler)
	}
	r.Use(RecoveryMiddleware)

	// Repository and request validation
	repo := sqlite.New(database, logger)
	validator, err := validate.New()
	if err != nil {
		return nil, err
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, validator, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(jobs.NewService(repo, logger), validator)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	authV1.HandleFunc("/update-user", authHandler.UpdateUser).Methods("PATCH")
	authV1.HandleFunc("/change-password", authHandler.ChangePassword).Methods("POST")

	// Jobs endpoints; /jobs/stats must be registered before /jobs/{id}
	apiV1.HandleFunc("/jobs", jobsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/jobs", jobsHandler.List).Methods("GET")
	apiV1.HandleFunc("/jobs/stats", jobsHandler.Stats).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.Get).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.Update).Methods("PATCH")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.Delete).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, errorResponse{Error: "route not found"}, http.StatusNotFound)
	})

	return r, nil
}
