// Command server runs the blog backend HTTP API.
//
// Configuration is read from config.yaml (or the file named by CONFIG_PATH)
// with environment variable overrides. DATABASE_DSN and AUTH_JWT_SECRET
// are required.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/blog-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
