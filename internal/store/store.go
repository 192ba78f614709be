// Package store persists completed perft results across process runs,
// keyed by (fen, depth), and reads them back through Get. The CLI writes
// every result it completes here but does not read them back, so its
// -suite run recomputes each seed. It is strictly an outer-layer
// convenience: the
// in-memory transposition cache in internal/cache is what gives perft its
// soundness guarantee within one call, and this package never feeds back
// into that recursion.
package store

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("store")

// Result is one persisted (fen, depth) -> nodes record.
type Result struct {
	FEN     string        `json:"fen"`
	Depth   int           `json:"depth"`
	Nodes   uint64        `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
}

// Store wraps a BadgerDB instance keyed by "fen|depth".
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func resultKey(fen string, depth int) []byte {
	return []byte(fen + "|" + strconv.Itoa(depth))
}

// Get returns the previously stored result for (fen, depth), if any.
func (s *Store) Get(fen string, depth int) (Result, bool, error) {
	var result Result
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(resultKey(fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if err != nil {
		return Result{}, false, err
	}
	return result, found, nil
}

// Put records the result of perft(fen, depth).
func (s *Store) Put(fen string, depth int, nodes uint64, elapsed time.Duration) error {
	result := Result{FEN: fen, Depth: depth, Nodes: nodes, Elapsed: elapsed}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(resultKey(fen, depth), data)
	})
	if err == nil {
		log.Debugf("stored perft(%q, %d) = %d nodes in %s", fen, depth, nodes, elapsed)
	}
	return err
}
