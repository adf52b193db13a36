package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlanSnapshot is the last plan list fetched for a user, replaced wholesale after every mutation.
type PlanSnapshot struct {
	UserID        int64          `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	Plans         datatypes.JSON `gorm:"type:json" json:"plans"`
	SelectedIndex int            `gorm:"not null" json:"selectedIndex"`
	RefreshedAt   time.Time      `json:"refreshedAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (PlanSnapshot) TableName() string {
	return "plan_snapshots"
}
