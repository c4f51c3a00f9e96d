package main

import (
	"context"
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"

	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/internal/echo"
	"lambda-http-bridge/internal/gateway"
	"lambda-http-bridge/internal/middleware"
	"lambda-http-bridge/pkg/bridge"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.SetupLogging(cfg)
	br := bridge.NewBridge(cfg.Upload.Dir, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.RequestSizeLimit(cfg.Upload.MaxBodyBytes))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"mode":      config.GetDeploymentMode(),
		})
	})

	// Every other route becomes a synthesized Lambda invocation
	router.NoRoute(gatewayHandler(br, echo.Handler))

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Gateway emulator started on port %s", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// gatewayHandler funnels live requests through the same code path a Lambda
// invocation takes. The request becomes a synthesized proxy event and the
// handler's proxy response is written back onto the wire.
func gatewayHandler(br *bridge.Bridge, fn bridge.HandlerFunc) gin.HandlerFunc {
	invoke := br.APIGatewayHandler(fn)

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, middleware.ErrorResponse{
				Error:     "Failed to read request body",
				Message:   err.Error(),
				RequestID: c.GetString(middleware.RequestIDKey),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}

		event := gateway.SynthesizeProxyEvent(c.Request, body)
		resp, err := invoke(c.Request.Context(), event)
		if err != nil {
			c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{
				Error:     "Invocation failed",
				Message:   err.Error(),
				RequestID: c.GetString(middleware.RequestIDKey),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}

		writeProxyResponse(c, resp)
	}
}

// writeProxyResponse translates a proxy response back into a plain HTTP
// response, decoding base64 bodies the way API Gateway would.
func writeProxyResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	for name, values := range resp.MultiValueHeaders {
		for _, value := range values {
			c.Writer.Header().Add(name, value)
		}
	}
	for name, value := range resp.Headers {
		if c.Writer.Header().Get(name) == "" {
			c.Writer.Header().Set(name, value)
		}
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(resp.Body); err == nil {
			body = decoded
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.Status(status)
	if len(body) > 0 {
		_, _ = c.Writer.Write(body)
	}
}
