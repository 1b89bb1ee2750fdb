package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/zidalco/zidalco-backend/internal/auth"
	"github.com/zidalco/zidalco-backend/internal/config"
	"github.com/zidalco/zidalco-backend/internal/database"
	"github.com/zidalco/zidalco-backend/internal/handlers"
	"github.com/zidalco/zidalco-backend/internal/middleware"
	"github.com/zidalco/zidalco-backend/internal/routes"
	"github.com/zidalco/zidalco-backend/internal/services"
	"github.com/zidalco/zidalco-backend/internal/store"
)

// selectBackend picks the storage backend once at startup: PostgreSQL when
// DATABASE_URL is set, DB_MOCK is off and the connection works, otherwise
// the file-backed store. There is no per-request fallback.
func selectBackend(cfg *config.Config) store.Backend {
	if cfg.DatabaseURL != "" && !cfg.DBMock {
		log.Println("Connecting to PostgreSQL...")
		pg, err := store.OpenPostgres(cfg.DatabaseURL)
		if err == nil {
			return pg
		}
		log.Printf("⚠️ PostgreSQL unavailable (%v), using file store", err)
	}

	fs, err := store.OpenFileStore(cfg.DataFile)
	if err != nil {
		log.Fatal("Failed to open file store:", err)
	}
	log.Printf("Using file store at %s", cfg.DataFile)
	return fs
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Println("⚠️  WARNING: JWT_SECRET not set, using the default development secret.")
	}

	backend := selectBackend(cfg)
	defer backend.Close()
	dispatcher := store.NewDispatcher(backend)

	// Redis is optional; without it the submission rate limit is disabled
	var rdb *redis.Client
	if cfg.RedisURI != "" {
		log.Println("Connecting to Redis...")
		client, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("⚠️ Redis unavailable (%v), submission rate limiting disabled", err)
		} else {
			rdb = client
			defer database.DisconnectRedis(rdb)
		}
	}

	admins := auth.NewRegistry(cfg.AdminAllowlist)
	admins.Seed(cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword)
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	limiter := auth.NewLoginLimiter()

	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailAdminTo)

	var uploads *services.UploadService
	if svc, err := services.NewUploadService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret); err != nil {
		log.Printf("Warning: Cloudinary not available: %v", err)
		log.Println("Image uploads will not be available")
	} else {
		uploads = svc
		log.Println("✅ Cloudinary service initialized")
	}

	h := handlers.New(cfg, dispatcher, admins, tokens, limiter, mailer, uploads)

	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	}

	routes.SetupRoutes(r, h, rdb)

	log.Printf("🚀 Zidalco backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
