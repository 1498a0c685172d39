package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rewardsbot/internal/auth"
	"rewardsbot/internal/bot"
	"rewardsbot/internal/config"
	"rewardsbot/internal/handlers"
	"rewardsbot/internal/jobs"
	"rewardsbot/internal/services"
	"rewardsbot/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT for the admin API
	auth.InitJWT(cfg.Server.JWTSecret)

	// Load the account snapshot
	accounts := store.New(cfg.Store.SnapshotPath)
	if err := accounts.Load(); err != nil {
		log.Fatalf("Failed to load account snapshot: %v", err)
	}

	// Connect to Telegram; a bad token or no connectivity fails here
	telegram, err := bot.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChannelID)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}

	// Deferred task scheduler for withdrawal follow-ups
	scheduler := jobs.NewScheduler()

	// Initialize services
	claimService := services.NewClaimService(accounts, cfg.Rewards.ClaimAmount, cfg.Rewards.ClaimCooldown)
	referralService := services.NewReferralService(accounts, cfg.Rewards.ReferralBonus, telegram)
	verificationService := services.NewVerificationService(accounts, telegram)
	withdrawalService := services.NewWithdrawalService(
		accounts,
		services.WithdrawRules{
			MinAmount:    cfg.Withdrawal.MinAmount,
			MinReferrals: cfg.Withdrawal.MinReferrals,
			Windows:      cfg.Withdrawal.Windows,
			Timezone:     cfg.Withdrawal.Timezone,
		},
		scheduler,
		telegram,
		cfg.Withdrawal.NotifyDelay,
	)
	statsService := services.NewStatsService(accounts)

	// Initialize the dispatcher
	dispatcher := bot.NewDispatcher(
		cfg,
		accounts,
		claimService,
		referralService,
		verificationService,
		withdrawalService,
		statsService,
		telegram,
		telegram.Username(),
	)

	// Start the periodic stats job
	statsJob := jobs.NewStatsJob(statsService)
	statsJob.Start(1 * time.Hour)
	log.Println("Stats job started")

	// Initialize admin handlers
	adminHandler := handlers.NewAdminHandler(statsService, accounts, scheduler)

	// Set up Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Admin routes (protected)
	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware())
	{
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/accounts/:id", adminHandler.GetAccount)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Admin server starting on port %s", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Start polling Telegram
	pollCtx, stopPolling := context.WithCancel(context.Background())
	go telegram.Run(pollCtx, dispatcher)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	stopPolling()
	statsJob.Stop()
	scheduler.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Bot exited")
}
