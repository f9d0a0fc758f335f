// Command instagram-mcp-http starts the Instagram MCP HTTP server.
package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"

    "github.com/paulovsm/instagram-mcp/internal/server"
)

func main() {
    // .env is optional; deployments usually set the environment directly.
    _ = godotenv.Load()

    cfg := server.Config{
        Port:        getEnv("PORT", "8080"),
        BearerToken: os.Getenv("BEARER_TOKEN"),
        AccessToken: os.Getenv("INSTAGRAM_ACCESS_TOKEN"),
        AccountID:   os.Getenv("INSTAGRAM_ACCOUNT_ID"),
        GraphHost:   getEnv("HOST_URL", "graph.facebook.com"),
        APIVersion:  getEnv("LATEST_API_VERSION", "v21.0"),
    }
    if cfg.BearerToken == "" {
        log.Println("WARN: BEARER_TOKEN not set; endpoints will be open. Set BEARER_TOKEN to secure.")
    }
    if cfg.AccessToken == "" || cfg.AccountID == "" {
        log.Println("WARN: INSTAGRAM_ACCESS_TOKEN or INSTAGRAM_ACCOUNT_ID not set; tool calls will fail against the Graph API.")
    }

    srv := server.New(cfg)
    httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Router()}

    go func() {
        log.Printf("Starting Instagram MCP server on :%s (streamable: /mcp, sse: /sse)\n", cfg.Port)
        certFile := os.Getenv("TLS_CERT_FILE")
        keyFile := os.Getenv("TLS_KEY_FILE")
        var err error
        if certFile != "" && keyFile != "" {
            log.Println("TLS enabled: using provided certificate and key")
            err = httpServer.ListenAndServeTLS(certFile, keyFile)
        } else {
            err = httpServer.ListenAndServe()
        }
        if err != nil && err != http.ErrServerClosed {
            log.Fatalf("server error: %v", err)
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    log.Println("Shutting down server...")
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := httpServer.Shutdown(ctx); err != nil {
        log.Fatalf("forced shutdown: %v", err)
    }
    log.Println("Server exited")
}

func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
