package recipes

import (
	"time"

	"gorm.io/gorm"
)

// MatchRun is one recorded evaluation.
type MatchRun struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Fingerprint   string    `gorm:"column:fingerprint;type:varchar(64);index" json:"fingerprint"`
	Source        string    `gorm:"column:source;type:varchar(255)" json:"source"`
	TotalSets     int       `gorm:"column:total_sets" json:"total_sets"`
	LeftoverCount int       `gorm:"column:leftover_count" json:"leftover_count"`
	WarningCount  int       `gorm:"column:warning_count" json:"warning_count"`
	ReportKey     string    `gorm:"column:report_key;type:varchar(255)" json:"report_key"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name.
func (MatchRun) TableName() string {
	return "match_runs"
}

// Migrate creates or updates the history table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&MatchRun{})
}
