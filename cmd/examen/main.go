package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/sebas-09/examen/internal/api/http"
	"github.com/sebas-09/examen/internal/auth"
	"github.com/sebas-09/examen/internal/config"
	"github.com/sebas-09/examen/internal/exam"
)

func main() {
	cfg := config.FromEnv()

	engine := exam.NewEngine(nil, nil) // seeded rand + wall clock
	store := exam.NewMemoryStore(engine)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mount := func(pr chi.Router) {
		pr.Post("/banks", api.UploadBankHandler(store))
		pr.Post("/sessions", api.CreateSessionHandler(store, cfg.DefaultCount, cfg.DefaultMinutes))
		pr.Get("/sessions/{sessionID}", api.GetSessionHandler(store))
		pr.Post("/sessions/{sessionID}/answers", api.SaveAnswerHandler(store))
		pr.Post("/sessions/{sessionID}/flags", api.ToggleFlagHandler(store))
		pr.Post("/sessions/{sessionID}/navigate", api.NavigateHandler(store))
		pr.Post("/sessions/{sessionID}/submit", api.SubmitSessionHandler(store))
		pr.Get("/sessions/{sessionID}/result", api.ResultHandler(store))
	}

	if cfg.EnableGuestAuth {
		authSvc := auth.NewAuthService(cfg.AuthSecret)
		r.Post("/auth/guest", auth.GuestLoginHandler(authSvc))
		r.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))
			mount(pr)
		})
	} else {
		r.Group(mount)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (guest_auth=%v)", cfg.HTTPAddr, cfg.EnableGuestAuth)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
