// fenboard - reads FEN lines from standard input and prints the parsed board.
// An empty line ends the session.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/fenboard/internal/console"
	"github.com/hailam/fenboard/internal/storage"
)

var (
	dbPath = flag.String("db", "", "position library directory (default: platform data dir, \"off\" to disable)")
	memory = flag.Bool("memory", false, "keep the position library in memory")
)

func main() {
	flag.Parse()

	store, err := openStore()
	if err != nil {
		log.Printf("Warning: position library unavailable: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	if err := console.New(os.Stdin, os.Stdout, store).Run(); err != nil {
		log.Fatal(err)
	}
}

// openStore opens the library selected by -db, -memory or FENBOARD_DB.
func openStore() (*storage.Storage, error) {
	if *memory {
		return storage.OpenInMemory()
	}
	path := *dbPath
	if path == "" {
		path = os.Getenv("FENBOARD_DB")
	}
	switch path {
	case "off":
		return nil, nil
	case "":
		return storage.OpenDefault()
	default:
		return storage.Open(path)
	}
}
