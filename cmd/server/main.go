package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizhub/internal/api"
	"quizhub/internal/app/service"
	"quizhub/internal/common/security"
	"quizhub/internal/domain/repository"
	"quizhub/internal/platform/cache"
	"quizhub/internal/platform/config"
	"quizhub/internal/platform/database"
	"quizhub/internal/platform/genai"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	quizRepo := repository.NewPgQuizRepository(database.DB)
	resultRepo := repository.NewPgResultRepository(database.DB)
	leaderboardCache := repository.NewRedisLeaderboardCache(cache.RDB)
	txRunner := repository.NewSQLTxRunner(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	progressionService := service.NewProgressionService(userRepo, resultRepo, txRunner)
	userService := service.NewUserService(userRepo, quizRepo, progressionService)
	quizService := service.NewQuizService(quizRepo, resultRepo, progressionService)
	socialService := service.NewSocialService(userRepo, resultRepo, txRunner)
	leaderboardService := service.NewLeaderboardService(userRepo, leaderboardCache, config.AppConfig.LeaderboardCacheTTL)

	genaiClient := genai.NewClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel, config.AppConfig.GeminiBaseURL)
	generationService := service.NewGenerationService(genaiClient)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, quizService, socialService, leaderboardService, generationService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
