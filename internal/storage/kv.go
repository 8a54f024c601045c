// Package storage persists store snapshots into the local key-value table.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"walletledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore reads and writes rows of the store_entries table.
type KVStore struct {
	db *gorm.DB
}

// NewKVStore creates a KVStore over db.
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the entry for key. found is false when no row exists.
func (s *KVStore) Get(ctx context.Context, key string) (entry *models.StoreEntry, found bool, err error) {
	var e models.StoreEntry
	if err := s.db.WithContext(ctx).Where("store_key = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return &e, true, nil
}

// Put upserts value under key.
func (s *KVStore) Put(ctx context.Context, key string, version int, value []byte) error {
	entry := models.StoreEntry{
		StoreKey:  key,
		Version:   version,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("store_key = ?", key).Delete(&models.StoreEntry{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys.
func (s *KVStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&models.StoreEntry{}).Order("store_key").Pluck("store_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Reset deletes every stored snapshot and returns the removed keys.
func (s *KVStore) Reset(ctx context.Context) ([]string, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
