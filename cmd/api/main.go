// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkme-app/linkme-backend/internal/auth"
	"github.com/linkme-app/linkme-backend/internal/common/database"
	"github.com/linkme-app/linkme-backend/internal/common/utils"
	"github.com/linkme-app/linkme-backend/internal/config"
	"github.com/linkme-app/linkme-backend/internal/matching"
	"github.com/linkme-app/linkme-backend/internal/notification"
	"github.com/linkme-app/linkme-backend/internal/otp"
	"github.com/linkme-app/linkme-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting LinkMe Dating API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded")
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Printf("✅ Configuration valid (environment=%s)", cfg.Environment)

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (verification codes and the result cache live there)
	log.Println("📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	redisClient, err = database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to Redis: ", err)
	}
	defer redisClient.Close()
	log.Println("✅ Connected to Redis")

	// 5. Verification codes
	log.Println("📱 Step 5: Initializing verification codes...")
	var emailProvider otp.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider = otp.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom)
		log.Println("   ✅ Using SendGrid for emails")
	default:
		emailProvider = otp.NewMockProvider()
		log.Println("   ⚠️  Using mock email provider")
	}

	var smsProvider otp.SMSProvider
	switch cfg.SMSProvider {
	case "twilio":
		smsProvider = otp.NewTwilioSMSProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		log.Println("   ✅ Using Twilio for SMS")
	default:
		smsProvider = otp.NewMockProvider()
		log.Println("   ⚠️  Using mock SMS provider")
	}

	otpStore := otp.NewRedisStore(redisClient)
	otpService := otp.NewService(otpStore, emailProvider, smsProvider, &otp.Config{
		Length:      cfg.OTPLength,
		Expiry:      cfg.OTPExpiry,
		MaxAttempts: cfg.MaxOTPAttempts,
	})

	// 6. Auth
	log.Println("🔐 Step 6: Initializing auth...")
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, otpService, cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.BCryptCost)
	authMiddleware := auth.NewMiddleware(authService)

	// 7. Notifications
	log.Println("🔔 Step 7: Initializing notifications...")
	hub := notification.NewHub()
	go hub.Run()
	notificationRepo := notification.NewPostgresRepository(db)
	notificationService := notification.NewService(notificationRepo, hub)

	// 8. Matching
	log.Println("💘 Step 8: Initializing matching engine...")
	matchingRepo := matching.NewPostgresRepository(db)
	resultCache := matching.NewResultCache(redisClient)
	engine := matching.NewEngine(matchingRepo, resultCache)

	// 9. Profiles
	log.Println("👤 Step 9: Initializing profiles...")
	var uploads profile.UploadService
	if cfg.UseS3 {
		uploads, err = profile.NewS3UploadService(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatal("❌ Failed to initialize S3 uploads: ", err)
		}
		log.Println("   ✅ Using S3 for avatar storage")
	} else {
		uploads = profile.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL)
		log.Println("   ⚠️  Using local disk for avatar storage")
	}
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, uploads, resultCache, notificationService)

	// 10. Routes
	log.Println("🌐 Step 10: Registering routes...")
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithData(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	auth.RegisterRoutes(router, auth.NewHandler(authService))
	otp.RegisterRoutes(router, otp.NewHandler(otpService))
	profile.RegisterRoutes(router, profile.NewHandler(profileService), authMiddleware)
	matching.RegisterRoutes(router, matching.NewHandler(engine), authMiddleware)
	notification.RegisterRoutes(router, notification.NewHandler(notificationService, hub), authMiddleware)

	// 11. Serve
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("❌ Forced shutdown: ", err)
	}
	log.Println("✅ Server stopped")
}
