package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/fenboard/internal/board"
)

// Storage keys
const (
	positionPrefix = "position/"
)

// ErrNotFound is returned when no record matches an ID or name.
var ErrNotFound = errors.New("position not found")

// Record is a saved position.
type Record struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	SavedAt time.Time `json:"saved_at"`
}

// Board parses the record's FEN into a new Board.
func (r *Record) Board() (*board.Board, error) {
	return board.ParseFEN(r.FEN)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open position store: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(id string) []byte {
	return []byte(positionPrefix + id)
}

// Save validates fen and stores it under name. The stored FEN is the board's
// canonical serialization, so non-canonical digit runs are normalized.
func (s *Storage) Save(name, fen string) (*Record, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		FEN:     b.ToFEN(),
		SavedAt: time.Now(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(positionKey(rec.ID), data)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Get loads the record with the given ID.
func (s *Storage) Get(id string) (*Record, error) {
	rec := &Record{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByName returns the most recently saved record with the given name.
func (s *Storage) FindByName(name string) (*Record, error) {
	recs, err := s.List()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].Name == name {
			return &recs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Lookup resolves key as a record ID first and as a name second.
func (s *Storage) Lookup(key string) (*Record, error) {
	if _, err := uuid.Parse(key); err == nil {
		rec, err := s.Get(key)
		if !errors.Is(err, ErrNotFound) {
			return rec, err
		}
	}
	return s.FindByName(key)
}

// List returns every record, oldest first.
func (s *Storage) List() ([]Record, error) {
	var recs []Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(positionPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SavedAt.Before(recs[j].SavedAt)
	})
	return recs, nil
}

// Delete removes the record with the given ID.
func (s *Storage) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(positionKey(id)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(positionKey(id))
	})
}
