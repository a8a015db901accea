package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/quizforge/backend/internal/auth"
	"github.com/quizforge/backend/internal/cache"
	"github.com/quizforge/backend/internal/database"
	"github.com/quizforge/backend/internal/generator"
	"github.com/quizforge/backend/internal/middleware"
	"github.com/quizforge/backend/internal/questions"
)

func main() {
	// Database is optional: without it the service still generates, it just
	// doesn't archive batches or serve auth.
	var store *questions.Store
	db, err := database.Connect()
	if err != nil {
		log.Printf("WARNING: database unavailable, running without persistence: %v", err)
	} else {
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = questions.NewStore(db)
	}

	// Shared LLM handle backs both external capabilities.
	llm, model := generator.SharedClient()
	log.Printf("Question synthesis backed by model %q", model)

	promptGen := generator.NewLLMPromptGenerator(llm)
	predictor := generator.NewLLMPredictor(llm)
	synth := generator.NewSynthesizer(predictor, nil)

	service := questions.NewService(promptGen, synth, store)

	var genCache cache.GenerationCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		ttl := 10 * time.Minute
		if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
				ttl = time.Duration(secs) * time.Second
			}
		}
		genCache = cache.NewGenerationCache(client, ttl)
		log.Printf("Response cache enabled via redis at %s", addr)
	}

	questionsHandler := questions.NewHandler(service, genCache)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/generate", questionsHandler.Generate).Methods("POST")

	if db != nil {
		authHandler := auth.NewHandler(db)
		api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
		api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

		// Protected routes
		protected := api.PathPrefix("").Subrouter()
		protected.Use(middleware.AuthMiddleware)
		protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
		protected.HandleFunc("/batches", questionsHandler.ListBatches).Methods("GET")
		protected.HandleFunc("/batches/{id}/questions", questionsHandler.GetBatchQuestions).Methods("GET")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
