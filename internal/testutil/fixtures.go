package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal, panicking on bad input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec returning a pointer, for update inputs.
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// MustDate parses a YYYY-MM-DD date.
func MustDate(t *testing.T, s string) civil.Date {
	t.Helper()

	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// FixedClock returns a Now func pinned to the given local date at noon.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	return func() time.Time { return at }
}

// MemoryStateStore keeps persisted store snapshots in memory as JSON,
// so round-trips exercise the same encoding as the real persister.
type MemoryStateStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	Saves  map[string]int
	Failed bool
}

// NewMemoryStateStore returns an empty MemoryStateStore.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		data:  make(map[string][]byte),
		Saves: make(map[string]int),
	}
}

// Load decodes the stored snapshot for key into dst.
func (m *MemoryStateStore) Load(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Save encodes state under key. Marshal failures are recorded in Failed.
func (m *MemoryStateStore) Save(key string, state any) {
	raw, err := json.Marshal(state)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.Failed = true
		return
	}
	m.data[key] = raw
	m.Saves[key]++
}

// SaveCount returns how many times key was saved.
func (m *MemoryStateStore) SaveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves[key]
}

// Raw returns the JSON last saved under key.
func (m *MemoryStateStore) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}
