// Package storage persists a reverse index from Polyglot keys to the FENs that
// produced them.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/hailam/fenkey/internal/zobrist"
)

// Storage keys
const (
	keyTableChecksum = "meta/table"
	positionPrefix   = "pos/"
)

var (
	// ErrNotFound is returned when a key has no indexed positions.
	ErrNotFound = errors.New("key not indexed")
	// ErrTableMismatch is returned when the index was built with another key table.
	ErrTableMismatch = errors.New("index was built with a different key table")
)

// Record is the value stored for one Polyglot key.
type Record struct {
	FENs      []string  `json:"fens"`
	FirstSeen time.Time `json:"first_seen"`
	Updated   time.Time `json:"updated"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log *zap.SugaredLogger
}

// Options configures Open.
type Options struct {
	// Dir is the database directory; empty uses the platform data dir.
	Dir      string
	// InMemory keeps everything in memory, for tests.
	InMemory bool
	Logger   *zap.SugaredLogger
}

// Open opens the index and ties it to table. A fresh index records the
// table's checksum; an existing one must match it.
func Open(table *zobrist.Table, opts Options) (*Storage, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		bopts = badger.DefaultOptions(dir)
		log.Debugw("opening index", "dir", dir)
	}
	bopts.Logger = nil // Disable logging

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger")
	}

	s := &Storage{db: db, log: log}
	if err := s.bindTable(table.Checksum()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) bindTable(sum uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTableChecksum))
		if err == badger.ErrKeyNotFound {
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], sum)
			return txn.Set([]byte(keyTableChecksum), buf[:])
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 || binary.BigEndian.Uint64(val) != sum {
				return ErrTableMismatch
			}
			return nil
		})
	})
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(h zobrist.Hash) []byte {
	return []byte(positionPrefix + h.String())
}

// Put records that fen hashes to h. Adding a FEN already stored under h is a
// no-op apart from the update time.
func (s *Storage) Put(h zobrist.Hash, fen string) error {
	return s.PutBatch(map[zobrist.Hash][]string{h: {fen}})
}

// PutBatch records several key/FEN pairs in one transaction.
func (s *Storage) PutBatch(items map[zobrist.Hash][]string) error {
	now := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		for h, fens := range items {
			rec, err := getRecord(txn, h)
			if errors.Is(err, ErrNotFound) {
				rec = &Record{FirstSeen: now}
			} else if err != nil {
				return err
			}

			for _, fen := range fens {
				if !contains(rec.FENs, fen) {
					rec.FENs = append(rec.FENs, fen)
				}
			}
			rec.Updated = now

			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := txn.Set(positionKey(h), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "index positions")
	}

	s.log.Debugw("indexed keys", "keys", len(items))
	return nil
}

// Lookup returns the record stored under h.
func (s *Storage) Lookup(h zobrist.Hash) (*Record, error) {
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, h)
		return err
	})
	return rec, err
}

// Count returns the number of distinct keys in the index.
func (s *Storage) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(positionPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func getRecord(txn *badger.Txn, h zobrist.Hash) (*Record, error) {
	item, err := txn.Get(positionKey(h))
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(ErrNotFound, "key %s", h)
	}
	if err != nil {
		return nil, err
	}

	rec := &Record{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
	return rec, err
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
