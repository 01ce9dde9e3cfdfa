package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ynckz/devops-simulator/internal/database"
	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/handlers"
	"github.com/ynckz/devops-simulator/internal/middleware"
	"github.com/ynckz/devops-simulator/internal/models"
	"github.com/ynckz/devops-simulator/internal/redis"
)

func main() {
	// Load configuration from environment
	if err := godotenv.Load(); err != nil {
		log.Println("[API] No .env file found, using environment as-is")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize database connection
	log.Println("[API] Initializing database connection...")
	db, err := database.NewConnection(database.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("[API] Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("[API] Failed to initialize schema: %v", err)
	}

	// Initialize Redis (rating index + in-flight incident sessions)
	cache, err := redis.NewClient(redis.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("[API] Failed to connect to Redis: %v", err)
	}
	defer cache.Close()

	log.Printf("[API] Catalogs loaded: %d incidents, %d crises", len(models.Incidents), len(models.Crises))

	// Initialize the game engine and handlers
	engine := game.New(database.NewStore(db))

	authHandler := handlers.NewAuthHandler()
	playerHandler := handlers.NewPlayerHandler(engine, cache)
	incidentHandler := handlers.NewIncidentHandler(engine, cache)
	maintenanceHandler := handlers.NewMaintenanceHandler(engine, cache)
	shopHandler := handlers.NewShopHandler(engine, cache)
	taskHandler := handlers.NewTaskHandler(engine, cache)
	leaderboardHandler := handlers.NewLeaderboardHandler(engine, cache)

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Gateway auth
	mux.HandleFunc("POST /api/auth/token", authHandler.Token)

	// Game routes (bot gateway only)
	mux.HandleFunc("POST /api/players", middleware.RequireAuth(playerHandler.CreateOrGet))
	mux.HandleFunc("GET /api/players/{id}/profile", middleware.RequireAuth(playerHandler.Profile))
	mux.HandleFunc("POST /api/players/{id}/incident", middleware.RequireAuth(incidentHandler.Issue))
	mux.HandleFunc("POST /api/players/{id}/incident/resolve", middleware.RequireAuth(incidentHandler.Resolve))
	mux.HandleFunc("POST /api/players/{id}/repair", middleware.RequireAuth(maintenanceHandler.Repair))
	mux.HandleFunc("POST /api/players/{id}/servers", middleware.RequireAuth(shopHandler.BuyServer))
	mux.HandleFunc("POST /api/players/{id}/skills", middleware.RequireAuth(shopHandler.UpgradeSkill))
	mux.HandleFunc("GET /api/players/{id}/tasks", middleware.RequireAuth(taskHandler.List))
	mux.HandleFunc("POST /api/players/{id}/tasks/{task_id}/claim", middleware.RequireAuth(taskHandler.Claim))
	mux.HandleFunc("GET /api/leaderboard", middleware.RequireAuth(leaderboardHandler.Top))

	// Start server
	log.Printf("[API] Starting server on port %s...", port)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("[API] Server failed: %v", err)
	}
}
