package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/docsearch/api"
	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/store"
)

// defaultSchema describes the package/documentation corpus this server
// indexes: a short synopsis field and a longer markup-tree description,
// plus a popularity feature folded into ranking alongside the text
// match score.
func defaultSchema() *config.Schema {
	return &config.Schema{
		Name: "packages",
		Fields: []config.FieldSpec{
			{Name: "synopsis", Kind: config.SynopsisField, ParamB: 0.75, Weight: 1.0},
			{Name: "description", Kind: config.DescriptionField, ParamB: 0.75, Weight: 0.5},
		},
		Features: []config.FeatureSpec{
			{Name: "popularity", Weight: 1.0, Function: config.LogarithmicFunction, Lambda: 1.0},
		},
		ParamK1:          1.2,
		MonospacedMaxLen: config.DefaultMonospacedMaxLen,
	}
}

func main() {
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./search_data", "Directory to store the index snapshot")
	)

	flag.Parse()

	if *help {
		fmt.Printf("docsearchd - BM25F full-text search over a documentation corpus\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		return
	}

	if *version {
		fmt.Printf("docsearchd v1.0.0\n")
		return
	}

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	snapshotPath := filepath.Join(*dataDir, "index.gob")

	log.Printf("Using data directory: %s", *dataDir)
	s := store.New(defaultSchema())
	if err := s.Load(snapshotPath); err != nil {
		log.Fatalf("Failed to load index snapshot: %v", err)
	}
	log.Printf("Loaded %d document(s), %d distinct term(s)", s.Engine.DocCount(), s.Engine.TermCount())

	router := gin.Default()
	api.SetupRoutes(router, s, snapshotPath)

	srv := &http.Server{
		Addr:           ":" + *port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Starting server on port %s...", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := s.Save(snapshotPath); err != nil {
		log.Printf("Warning: failed to save index snapshot: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
