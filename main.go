package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"golang.org/x/exp/rand"

	"grantsassist/backend/handlers"
	"grantsassist/backend/handlers/editor"
	"grantsassist/backend/handlers/finder"
	"grantsassist/backend/handlers/profile"
	"grantsassist/backend/handlers/projects"
	settingsapi "grantsassist/backend/handlers/settings"
	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/grants"
	"grantsassist/backend/services/nonprofit"
	"grantsassist/backend/services/recommend"
	"grantsassist/backend/services/settings"
	"grantsassist/backend/services/storage"
	"grantsassist/backend/services/workspace"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Check required environment variables
	if os.Getenv("DATABASE_URL") == "" {
		log.Fatalf("Required environment variable DATABASE_URL is not set")
	}

	// Initialize random seed for the sample-data generator
	rand.Seed(uint64(time.Now().UnixNano()))

	// Initialize database connection
	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	kv, err := storage.NewPostgres(db)
	if err != nil {
		log.Fatal(err)
	}

	// Wire the service layer
	profileStore := nonprofit.NewStore(kv)
	projectStore := grants.NewStore(kv)
	appSettings := settings.New(kv, os.Getenv("GEMINI_API_KEY"))
	gateway := ai.NewGateway(appSettings)
	engine := recommend.NewEngine(gateway, kv, appSettings.MockMode)
	manager := workspace.NewManager(projectStore, gateway)
	defer manager.Close()

	// Create router
	r := mux.NewRouter()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	api := r.PathPrefix("/api").Subrouter()

	// Profile routes
	api.HandleFunc("/profile", profile.GetProfileHandler(profileStore)).Methods("GET", "OPTIONS")
	api.HandleFunc("/profile", profile.UpdateProfileHandler(profileStore)).Methods("PUT", "OPTIONS")
	api.HandleFunc("/profile", profile.ResetProfileHandler(profileStore)).Methods("DELETE", "OPTIONS")

	// Project routes
	api.HandleFunc("/projects", projects.ListProjectsHandler(projectStore)).Methods("GET", "OPTIONS")
	api.HandleFunc("/projects", projects.CreateProjectHandler(projectStore)).Methods("POST", "OPTIONS")
	api.HandleFunc("/projects/{id}", projects.GetProjectHandler(projectStore)).Methods("GET", "OPTIONS")
	api.HandleFunc("/projects/{id}", projects.DeleteProjectHandler(projectStore)).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/projects/{id}/status", projects.TransitionProjectHandler(projectStore)).Methods("POST", "OPTIONS")
	api.HandleFunc("/projects/{id}/critique", projects.CritiqueProjectHandler(projectStore, gateway)).Methods("POST", "OPTIONS")

	// Grant finder routes
	api.HandleFunc("/grants/search", finder.SearchGrantsHandler(engine, profileStore)).Methods("POST", "OPTIONS")
	api.HandleFunc("/grants/cached", finder.CachedRecommendationsHandler(engine)).Methods("GET", "OPTIONS")

	// Settings routes
	api.HandleFunc("/settings/credential", settingsapi.GetCredentialHandler(appSettings)).Methods("GET", "OPTIONS")
	api.HandleFunc("/settings/credential", settingsapi.SetCredentialHandler(appSettings)).Methods("PUT", "OPTIONS")
	api.HandleFunc("/settings/credential", settingsapi.DeleteCredentialHandler(appSettings)).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/settings/mock-mode", settingsapi.GetMockModeHandler(appSettings)).Methods("GET", "OPTIONS")
	api.HandleFunc("/settings/mock-mode", settingsapi.SetMockModeHandler(appSettings)).Methods("PUT", "OPTIONS")

	// Workspace edit channel
	r.HandleFunc("/ws/workspace/{id}", editor.HandleWorkspaceSocket(manager))

	// Sample data
	api.HandleFunc("/test/generate-projects", handlers.GenerateTestDataHandler(projectStore)).Methods("POST", "OPTIONS")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
