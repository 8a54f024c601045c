package models

import "time"

// StoreEntry is one persisted store snapshot in the local key-value table.
// Value holds the JSON-encoded state; Version is the envelope schema version.
type StoreEntry struct {
	StoreKey  string    `gorm:"column:store_key;type:varchar(64);primaryKey"`
	Version   int       `gorm:"not null;default:1"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table created by the migrations.
func (StoreEntry) TableName() string { return "store_entries" }
