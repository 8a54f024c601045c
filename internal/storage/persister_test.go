package storage

import (
	"context"
	"testing"
	"time"

	"walletledger/internal/models"
	"walletledger/internal/testutil"
)

type snapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestPersister(t *testing.T) (*Persister, *KVStore) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	kv := NewKVStore(db)
	return NewPersister(kv, 10*time.Millisecond), kv
}

func TestPersister_LoadMissing(t *testing.T) {
	p, _ := newTestPersister(t)

	var dst snapshot
	found, err := p.Load(context.Background(), "absent", &dst)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected nothing to load")
	}
}

func TestPersister_SaveVisibleBeforeFlush(t *testing.T) {
	p, kv := newTestPersister(t)
	ctx := context.Background()

	p.Save(KeyWallets, snapshot{Name: "a", Count: 1})
	p.Save(KeyWallets, snapshot{Name: "b", Count: 2})

	if _, found, _ := kv.Get(ctx, KeyWallets); found {
		t.Fatal("expected nothing written before flush")
	}

	var dst snapshot
	found, err := p.Load(ctx, KeyWallets, &dst)
	testutil.AssertNoError(t, err)
	if !found || dst.Name != "b" {
		t.Errorf("expected pending snapshot b, got found=%v %+v", found, dst)
	}
	if p.Pending() != 1 {
		t.Errorf("expected saves to coalesce into 1 pending key, got %d", p.Pending())
	}
}

func TestPersister_Flush(t *testing.T) {
	p, kv := newTestPersister(t)
	ctx := context.Background()

	p.Save(KeyWallets, snapshot{Name: "w", Count: 3})
	p.Save(KeySettings, snapshot{Name: "s"})
	testutil.AssertNoError(t, p.Flush(ctx))

	if p.Pending() != 0 {
		t.Errorf("expected no pending keys, got %d", p.Pending())
	}
	entry, found, err := kv.Get(ctx, KeyWallets)
	testutil.AssertNoError(t, err)
	if !found || entry.Value != `{"name":"w","count":3}` {
		t.Errorf("unexpected stored entry %+v", entry)
	}

	// A fresh persister over the same table sees the flushed data.
	fresh := NewPersister(kv, time.Second)
	var dst snapshot
	found, err = fresh.Load(ctx, KeySettings, &dst)
	testutil.AssertNoError(t, err)
	if !found || dst.Name != "s" {
		t.Errorf("expected settings snapshot, got found=%v %+v", found, dst)
	}
}

func TestPersister_UnreadableSnapshot(t *testing.T) {
	p, kv := newTestPersister(t)
	ctx := context.Background()

	testutil.AssertNoError(t, kv.Put(ctx, KeyCategories, SchemaVersion, []byte("not json")))
	testutil.AssertNoError(t, kv.Put(ctx, KeySettings, SchemaVersion+1, []byte(`{"name":"future"}`)))

	var dst snapshot
	found, err := p.Load(ctx, KeyCategories, &dst)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected corrupt snapshot to be ignored")
	}

	found, err = p.Load(ctx, KeySettings, &dst)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected newer schema snapshot to be ignored")
	}
}

func TestPersister_Run(t *testing.T) {
	p, kv := newTestPersister(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	p.Save(KeyTransactions, []models.Transaction{{ID: "t1", Type: models.TransactionTypeIncome}})

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, found, _ := kv.Get(context.Background(), KeyTransactions); found {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snapshot was not flushed by Run")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Saved right before shutdown; the final flush must write it.
	p.Save(KeyWallets, snapshot{Name: "last"})
	cancel()

	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if _, found, _ := kv.Get(context.Background(), KeyWallets); !found {
		t.Error("expected final flush to write pending snapshot")
	}
}
