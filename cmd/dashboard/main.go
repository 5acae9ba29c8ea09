package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"aquawatch/api"
	"aquawatch/config"
	"aquawatch/handlers"
	"aquawatch/models"
	"aquawatch/poller"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Backend client and polling controller
	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout)
	p := poller.NewPoller(client, cfg.PollInterval, cfg.RequestTimeout)
	p.Start()

	// Warm the default history slot; failure is non-fatal, the slot stays
	// empty until the first dashboard request refreshes it.
	period, err := models.ParsePeriod(cfg.DefaultPeriod)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_PERIOD: %v", err)
	}
	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if _, err := p.RefreshHistory(warmCtx, period); err != nil {
		log.Printf("WARNING: Failed to warm history for period %s: %v", period, err)
	}
	warmCancel()

	// Setup HTTP router
	router := setupRouter(p, client)

	// Configure HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server with graceful shutdown
	go func() {
		log.Printf("Starting AquaWatch dashboard service on port %s", cfg.Port)
		log.Printf("Configuration:")
		log.Printf("  Backend API: %s", cfg.APIURL)
		log.Printf("  Poll Interval: %v", cfg.PollInterval)
		log.Printf("  Request Timeout: %v", cfg.RequestTimeout)
		log.Printf("  Default Period: %s", period)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop the poller first so no state updates land during shutdown
	p.Stop()
	log.Println("Poller stopped")

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func setupRouter(p *poller.Poller, client *api.Client) *gin.Engine {
	router := gin.Default()

	dashboardHandler := handlers.NewDashboardHandler(p, client)

	// Health check
	router.GET("/health", dashboardHandler.HealthCheck)

	// Dashboard endpoints
	router.GET("/api/dashboard", dashboardHandler.HandleDashboard)
	router.GET("/api/history/:period", dashboardHandler.HandleHistory)
	router.GET("/api/pings", dashboardHandler.HandleListPings)
	router.POST("/api/pings", dashboardHandler.HandleCreatePing)

	return router
}
