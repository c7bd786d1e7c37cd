package router

import (
	chiprometheus "github.com/766b/chi-prometheus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New() *chi.Mux {
	return NewWithOrigin("*")
}

// NewWithOrigin builds the same middleware stack as New but restricts CORS
// to the given origin instead of the wildcard, for deployments that front a
// single known web client.
func NewWithOrigin(origin string) *chi.Mux {
	// Init a new router instance
	r := chi.NewRouter()

	r.Use(middleware.RequestID)

	r.Use(middleware.RealIP)

	r.Use(middleware.Logger)

	r.Use(middleware.Recoverer)

	r.Use(middleware.CleanPath)

	r.Use(middleware.Heartbeat("/"))

	r.Use(chiprometheus.NewMiddleware("vpos_orchestrator"))
	r.Handle("/metrics", promhttp.Handler())

	r.Use(render.SetContentType(render.ContentTypeJSON))

	if origin == "" {
		origin = "*"
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Handle("/metrics", promhttp.Handler())

	return r
}
