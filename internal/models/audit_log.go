package models

// AuditLog records every ledger, wallet, category and settings mutation.
type AuditLog struct {
	Base
	Action       string `gorm:"type:varchar(64);not null" json:"action"`
	ResourceType string `gorm:"type:varchar(32);not null" json:"resource_type"`
	ResourceID   string `gorm:"type:varchar(64)" json:"resource_id"`
	IPAddress    string `gorm:"type:varchar(64)" json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
