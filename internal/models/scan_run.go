package models

import (
	"time"

	"gorm.io/gorm"
)

// ScanRun summarizes one catalog run in the history database
type ScanRun struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	RunID         string         `gorm:"not null;uniqueIndex" json:"run_id"`
	StartedAt     time.Time      `gorm:"not null;index" json:"started_at"`
	DurationMs    int64          `gorm:"not null;default:0" json:"duration_ms"`
	Query         string         `gorm:"not null;default:''" json:"query"`
	IconTheme     string         `gorm:"not null;default:''" json:"icon_theme"`
	Directories   int            `gorm:"not null;default:0" json:"directories"`
	FilesSeen     int            `gorm:"not null;default:0" json:"files_seen"`
	AppCount      int            `gorm:"not null;default:0" json:"app_count"`
	FavoriteCount int            `gorm:"not null;default:0" json:"favorite_count"`
	SkipCount     int            `gorm:"not null;default:0" json:"skip_count"`
	Skips         []ScanSkip     `gorm:"foreignKey:ScanRunID;constraint:OnDelete:CASCADE" json:"skips,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ScanSkip records a desktop file that produced no entry
type ScanSkip struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ScanRunID uint      `gorm:"not null;index" json:"scan_run_id"`
	Path      string    `gorm:"not null" json:"path"`
	Reason    string    `gorm:"not null" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
