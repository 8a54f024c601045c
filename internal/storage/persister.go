package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"walletledger/internal/logger"
)

// SchemaVersion is written alongside every snapshot.
const SchemaVersion = 1

// Persistence keys, one per store.
const (
	KeyWallets      = "wallet-storage"
	KeyTransactions = "transaction-storage"
	KeyCategories   = "category-storage"
	KeySettings     = "settings-storage"
)

// Persister writes store snapshots in the background. Save never blocks on
// the database: the latest snapshot per key is kept in memory and flushed
// by Run after a short debounce. Loads see pending snapshots first.
type Persister struct {
	kv       *KVStore
	interval time.Duration

	mu      sync.Mutex
	pending map[string][]byte
	notify  chan struct{}
}

// NewPersister creates a persister that flushes at most once per interval.
func NewPersister(kv *KVStore, interval time.Duration) *Persister {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Persister{
		kv:       kv,
		interval: interval,
		pending:  make(map[string][]byte),
		notify:   make(chan struct{}, 1),
	}
}

// Load decodes the last snapshot for key into dst. It returns false when
// nothing was saved, or when the saved snapshot cannot be decoded (the
// caller then keeps its defaults).
func (p *Persister) Load(ctx context.Context, key string, dst any) (bool, error) {
	p.mu.Lock()
	raw, ok := p.pending[key]
	p.mu.Unlock()

	if !ok {
		entry, found, err := p.kv.Get(ctx, key)
		if err != nil {
			return false, err
		}
		if !found {
			return false, nil
		}
		if entry.Version > SchemaVersion {
			logger.Get().Warnw("Ignoring snapshot from newer schema",
				"key", key, "version", entry.Version, "supported", SchemaVersion)
			return false, nil
		}
		raw = []byte(entry.Value)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Get().Warnw("Discarding unreadable snapshot", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save serializes state now and schedules it for writing.
func (p *Persister) Save(key string, state any) {
	raw, err := json.Marshal(state)
	if err != nil {
		logger.Get().Errorw("Failed to encode snapshot", "key", key, "error", err)
		return
	}

	p.mu.Lock()
	p.pending[key] = raw
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Pending reports how many keys are waiting to be written.
func (p *Persister) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Flush writes all pending snapshots. Snapshots that fail to write are
// re-queued unless a newer one arrived meanwhile.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	batch := p.pending
	p.pending = make(map[string][]byte, len(batch))
	p.mu.Unlock()

	var errs []error
	for key, raw := range batch {
		if err := p.kv.Put(ctx, key, SchemaVersion, raw); err != nil {
			errs = append(errs, err)
			p.mu.Lock()
			if _, newer := p.pending[key]; !newer {
				p.pending[key] = raw
			}
			p.mu.Unlock()
		}
	}
	if len(errs) > 0 {
		select {
		case p.notify <- struct{}{}:
		default:
		}
	}
	return errors.Join(errs...)
}

// Run flushes pending snapshots until ctx is cancelled, then performs a
// final flush.
func (p *Persister) Run(ctx context.Context) error {
	log := logger.Named("persister")
	log.Infow("Persister started", "interval", p.interval)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := p.Flush(shutdownCtx); err != nil {
				return fmt.Errorf("final flush: %w", err)
			}
			log.Info("Persister stopped")
			return nil
		case <-p.notify:
			timer := time.NewTimer(p.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
			if err := p.Flush(ctx); err != nil && ctx.Err() == nil {
				log.Errorw("Failed to persist snapshots", "error", err)
			}
		}
	}
}
