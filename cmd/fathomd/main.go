// Command fathomd builds a spatial index over a directory of map files and
// serves it over HTTP: search enqueues a query, results polls its
// progress.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wavemark/fathom/internal/config"
	"github.com/wavemark/fathom/internal/httpapi"
	"github.com/wavemark/fathom/internal/indexer"
	"github.com/wavemark/fathom/internal/queryworker"
)

const bindAddr = "0.0.0.0:42069"

func main() {
	configPath := flag.String("config", "", "Path to the map-file root configuration file")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("fathomd: -config is required")
	}

	root, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fathomd: loading config: %v", err)
	}

	log.Printf("fathomd: indexing %s", root)
	idx, err := indexer.Build(root)
	if err != nil {
		log.Fatalf("fathomd: building index: %v", err)
	}
	log.Printf("fathomd: indexed %d map files", idx.Count())

	jobs := queryworker.NewJobTable()
	queue := queryworker.NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queryworker.Run(ctx, queue, idx)

	server := &http.Server{
		Addr:    bindAddr,
		Handler: httpapi.New(jobs, queue),
	}

	go func() {
		log.Printf("fathomd: listening on %s", bindAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("fathomd: server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Print("fathomd: shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("fathomd: shutdown error: %v", err)
	}
	queue.Close()
	cancel()
}
