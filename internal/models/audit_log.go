package models

import "time"

// AuditLog records every write made on behalf of a user.
type AuditLog struct {
	Base
	CreatedAt    time.Time `json:"created_at"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `json:"changes,omitempty"`
}
