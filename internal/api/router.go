package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wedlux/planner-service/internal/api/handlers"
	"github.com/wedlux/planner-service/internal/infrastructure/auth"
	"github.com/wedlux/planner-service/internal/infrastructure/client"
	"github.com/wedlux/planner-service/internal/usecase"
)

func NewRouter(
	taskService *usecase.TaskService,
	weddingService *usecase.WeddingService,
	authService *usecase.AuthService,
	jwtManager *auth.JWTManager,
	postgres *client.PostgresClient,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(MetricsMiddleware)

	taskHandler := handlers.NewTaskHandler(taskService)
	weddingHandler := handlers.NewWeddingHandler(weddingService)
	authHandler := handlers.NewAuthHandler(authService)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := postgres.HealthCheck(req.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtManager))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.GetTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Patch("/", taskHandler.UpdateTask)
				r.Get("/insights", taskHandler.GetInsights)
			})

			r.Route("/weddings", func(r chi.Router) {
				r.Get("/", weddingHandler.ListWeddings)
				r.Post("/", weddingHandler.CreateWedding)
			})
		})
	})

	return r
}
