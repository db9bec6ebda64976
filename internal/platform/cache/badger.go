package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"paylens/internal/platform/logger"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is a Cache backed by an embedded badger store
type Badger struct {
	db  *badger.DB
	log logger.Logger
}

// OpenBadger opens a badger backed cache per cfg
func OpenBadger(cfg Config, log logger.Logger) (*Badger, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("cache: path is required for persistent cache")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("cache: create dir %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	// badger's own logger is chatty, route nothing through it
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}
	return &Badger{db: db, log: log}, nil
}

// Get returns the value for key if present and unexpired
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Set stores val under key, badger expires the entry after ttl
func (b *Badger) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	return b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), val)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes key
func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Ping reports backend health
func (b *Badger) Ping(context.Context) error {
	if b == nil || b.db == nil || b.db.IsClosed() {
		return errors.New("cache: closed")
	}
	return nil
}

// RunGC triggers a value log garbage collection pass, call from a ticker loop
func (b *Badger) RunGC(ratio float64) error {
	err := b.db.RunValueLogGC(ratio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the underlying db
func (b *Badger) Close() error { return b.db.Close() }
