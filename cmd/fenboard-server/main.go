package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/hailam/fenboard/internal/server"
	"github.com/hailam/fenboard/internal/storage"
)

var (
	addr       = flag.String("addr", ":8080", "address to listen on")
	dbPath     = flag.String("db", "", "position library directory (default: platform data dir)")
	memory     = flag.Bool("memory", false, "keep the position library in memory")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	store, err := openStore()
	if err != nil {
		log.Fatal("could not open position library: ", err)
	}
	defer store.Close()

	srv := server.New(store, os.Stdout)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("Starting server on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server: %v", err)
	}
}

func openStore() (*storage.Storage, error) {
	if *memory {
		return storage.OpenInMemory()
	}
	path := *dbPath
	if path == "" {
		path = os.Getenv("FENBOARD_DB")
	}
	if path == "" {
		return storage.OpenDefault()
	}
	return storage.Open(path)
}
