package api

import (
	"net/http"
	"time"

	"quizhub/internal/api/handler"
	"quizhub/internal/app/service"
	"quizhub/internal/common/security"
	"quizhub/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

// NewRouter keeps the legacy flat route surface; the frontend was written
// against these paths and they are the API contract.
func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	quizService *service.QuizService,
	socialService *service.SocialService,
	leaderboardService *service.LeaderboardService,
	generationService *service.GenerationService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.FrontendHost},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Verifies the token found in the Authorization header or the jwt
	// cookie and puts claims in context; enforcement happens per-route.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	handler.NewAuthHandler(authService).RegisterRoutes(r)
	handler.NewUserHandler(userService).RegisterRoutes(r)
	handler.NewQuizHandler(quizService, generationService).RegisterRoutes(r)
	handler.NewSocialHandler(socialService).RegisterRoutes(r)
	handler.NewLeaderboardHandler(leaderboardService).RegisterRoutes(r)

	return r
}
