package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shivamgupta1319/EasyShare/internal/api"
	"github.com/shivamgupta1319/EasyShare/internal/api/handlers"
	"github.com/shivamgupta1319/EasyShare/internal/blob"
	"github.com/shivamgupta1319/EasyShare/internal/config"
	"github.com/shivamgupta1319/EasyShare/internal/recordstore"
)

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open record store: ", err)
	}

	var (
		blobs   blob.Store
		uploads http.Handler
	)
	if cfg.R2.Enabled() {
		blobs = blob.NewR2(blob.R2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			Region:          cfg.R2.Region,
		})
		log.Println("Using R2 upload storage")
	} else {
		local, err := blob.NewLocal(cfg.UploadDir)
		if err != nil {
			log.Fatal("Failed to prepare upload dir: ", err)
		}
		blobs = local
		uploads = local.Handler()
		log.Println("Using local upload storage in", cfg.UploadDir)
	}

	h := handlers.New(store, blobs, cfg.JWTSecret, cfg.Environment == "production")
	mux := api.SetupRouter(api.Deps{Handler: h, Uploads: uploads, Config: cfg})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting EasyShare server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func openStore(cfg config.Config) (recordstore.Store, error) {
	if cfg.DBURL != "" {
		log.Println("Using Postgres record store")
		return recordstore.NewPostgresStore(cfg.DBURL)
	}
	log.Println("Using JSON record store in", cfg.DataDir)
	return recordstore.NewJSONStore(cfg.DataDir)
}
