package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	favoriteHTTP "github.com/FrancielliAndreghetto/moviefavs/internal/favorite/delivery/http"
	favoriteRepo "github.com/FrancielliAndreghetto/moviefavs/internal/favorite/repository"
	"github.com/FrancielliAndreghetto/moviefavs/internal/movie"
	movieHTTP "github.com/FrancielliAndreghetto/moviefavs/internal/movie/delivery/http"
	userHTTP "github.com/FrancielliAndreghetto/moviefavs/internal/user/delivery/http"
	userRepo "github.com/FrancielliAndreghetto/moviefavs/internal/user/repository"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/database"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/httpclient"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/logger"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/tracing"
)

const serviceName = "moviefavs-api"

func main() {
	environment := getEnv("ENVIRONMENT", "development")
	logger.Init(serviceName, environment == "development")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	db, err := database.NewGormConnection(database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "moviefavs"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	users := userRepo.NewGormUserRepository(db)
	tokens := userRepo.NewGormTokenRepository(db)
	favorites := favoriteRepo.NewGormFavoriteRepositoryWithTracing(db)

	if err := users.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate users")
	}
	if err := tokens.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate access tokens")
	}
	if err := favorites.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate favorites")
	}

	timeout := time.Duration(getEnvInt("TMDB_TIMEOUT", 30)) * time.Second
	catalog, err := movie.NewService(
		httpclient.New(timeout),
		getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		os.Getenv("TMDB_API_KEY"),
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to configure movie catalog")
	}

	router := mux.NewRouter()
	userHTTP.NewAuthHandler(users, tokens).RegisterRoutes(router)
	favoriteHTTP.NewFavoriteHandler(favorites, users, tokens).RegisterRoutes(router)
	movieHTTP.NewMovieHandler(catalog).RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().Str("port", port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if tp != nil {
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
