package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgepoint/site-server/internal/api"
	"github.com/forgepoint/site-server/internal/config"
	"github.com/forgepoint/site-server/internal/content"
	"github.com/forgepoint/site-server/internal/crm"
	"github.com/forgepoint/site-server/internal/mailer"
	"github.com/forgepoint/site-server/internal/newsletter"
	"github.com/forgepoint/site-server/internal/ratelimit"
	"github.com/forgepoint/site-server/internal/site"
	"github.com/forgepoint/site-server/internal/token"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", cfg.Server.Port)

	// Load site content (services, pricing tables, posts). A bad content
	// edit fails here, before the server takes traffic.
	library, err := content.Load(cfg.Site.ContentDir)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	log.Printf("Content loaded: %d services, %d posts", len(library.Services), len(library.Posts))

	renderer := site.NewRenderer(cfg.Site.TemplatesDir, cfg.Site.Name, cfg.Site.BaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Newsletter: token service, subscriber store, confirmation mailer
	tokens, err := token.NewService(cfg.Newsletter.TokenSecret, cfg.Site.Name)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	store, err := newsletter.NewDynamoStore(ctx, cfg.Newsletter.DynamoDBTable, cfg.Newsletter.AWSRegion, cfg.Newsletter.GetAWSProfile())
	if err != nil {
		log.Fatalf("Failed to initialize subscriber store: %v", err)
	}
	log.Printf("Subscriber store ready (table: %s)", cfg.Newsletter.DynamoDBTable)

	confirmMailer, err := mailer.New(ctx, cfg.SES, cfg.Site.Name)
	if err != nil {
		log.Fatalf("Failed to initialize SES mailer: %v", err)
	}

	newsletterService := newsletter.NewService(store, confirmMailer, tokens, cfg.Site.BaseURL,
		cfg.Newsletter.ConfirmTTL(), cfg.Newsletter.UnsubscribeTTL())

	// CRM forwarding for the contact form
	var forwarder *crm.Forwarder
	if cfg.CRM.Enabled && cfg.CRM.BaseURL != "" && cfg.CRM.APIKey != "" {
		client := crm.NewClient(crm.Config{
			BaseURL:   cfg.CRM.BaseURL,
			APIKey:    cfg.CRM.APIKey,
			APISecret: cfg.CRM.APISecret,
		}, cfg.CRM.Timeout())
		forwarder = crm.NewForwarder(client, cfg.CRM.LeadSource)
		log.Println("CRM forwarding enabled")
	} else {
		log.Println("CRM forwarding not configured (contact submissions will only be logged)")
	}

	// Redis-backed rate limiting for the public form endpoints
	var limiter *ratelimit.Limiter
	if cfg.RateLimit.RedisURL != "" {
		limiter, err = ratelimit.Connect(ctx, cfg.RateLimit.RedisURL, cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
		if err != nil {
			log.Printf("Warning: Redis connection failed: %v — form endpoints run unthrottled", err)
		} else {
			defer limiter.Close()
			log.Printf("Rate limiting enabled (%d requests per %s)", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
		}
	} else {
		log.Println("Rate limiting not configured (REDIS_URL not set)")
	}

	server := api.NewServer(cfg, renderer, library, newsletterService, forwarder, limiter)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized — server is ready")

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
