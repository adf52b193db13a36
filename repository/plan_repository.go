package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"fitcoach/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanRepository stores the last plan list fetched for each user.
type PlanRepository interface {
	SaveSnapshot(userID int64, plans []models.WeeklyPlan, selectedIndex int, refreshedAt time.Time) error
	GetSnapshot(userID int64) (*models.PlanSnapshot, error)
	GetPlans(userID int64) ([]models.WeeklyPlan, int, error)
	UpdateSelection(userID int64, selectedIndex int) error
	DeleteSnapshot(userID int64) error
	ListUserIDs() ([]int64, error)
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new instance of PlanRepository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// SaveSnapshot replaces the user's snapshot wholesale (UPSERT on user_id).
func (r *planRepository) SaveSnapshot(userID int64, plans []models.WeeklyPlan, selectedIndex int, refreshedAt time.Time) error {
	if plans == nil {
		plans = []models.WeeklyPlan{}
	}
	encoded, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("failed to encode plans for userID %d: %w", userID, err)
	}

	snapshot := models.PlanSnapshot{
		UserID:        userID,
		Plans:         datatypes.JSON(encoded),
		SelectedIndex: selectedIndex,
		RefreshedAt:   refreshedAt,
	}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plans", "selected_index", "refreshed_at", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to save plan snapshot for userID %d: %v", userID, err)
		return fmt.Errorf("failed to save plan snapshot for userID %d: %w", userID, err)
	}
	log.Printf("INFO: [PlanRepository] Saved %d plans for userID %d (selected index %d).", len(plans), userID, selectedIndex)
	return nil
}

// GetSnapshot returns (nil, nil) when the user has no snapshot yet.
func (r *planRepository) GetSnapshot(userID int64) (*models.PlanSnapshot, error) {
	var snapshot models.PlanSnapshot
	err := r.db.First(&snapshot, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [PlanRepository] Failed to retrieve plan snapshot for userID %d: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve plan snapshot for userID %d: %w", userID, err)
	}
	return &snapshot, nil
}

// GetPlans decodes the stored plan list. An unknown user yields no plans and index -1.
func (r *planRepository) GetPlans(userID int64) ([]models.WeeklyPlan, int, error) {
	snapshot, err := r.GetSnapshot(userID)
	if err != nil {
		return nil, -1, err
	}
	if snapshot == nil {
		return nil, -1, nil
	}
	var plans []models.WeeklyPlan
	if len(snapshot.Plans) > 0 {
		if err := json.Unmarshal(snapshot.Plans, &plans); err != nil {
			return nil, -1, fmt.Errorf("failed to decode plan snapshot for userID %d: %w", userID, err)
		}
	}
	return plans, snapshot.SelectedIndex, nil
}

func (r *planRepository) UpdateSelection(userID int64, selectedIndex int) error {
	result := r.db.Model(&models.PlanSnapshot{}).Where("user_id = ?", userID).Update("selected_index", selectedIndex)
	if result.Error != nil {
		log.Printf("ERROR: [PlanRepository] Failed to update selection for userID %d: %v", userID, result.Error)
		return fmt.Errorf("failed to update selection for userID %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("plan snapshot for userID %d not found", userID)
	}
	return nil
}

func (r *planRepository) DeleteSnapshot(userID int64) error {
	if err := r.db.Delete(&models.PlanSnapshot{}, "user_id = ?", userID).Error; err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to delete plan snapshot for userID %d: %v", userID, err)
		return fmt.Errorf("failed to delete plan snapshot for userID %d: %w", userID, err)
	}
	return nil
}

func (r *planRepository) ListUserIDs() ([]int64, error) {
	var ids []int64
	if err := r.db.Model(&models.PlanSnapshot{}).Order("user_id asc").Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshot users: %w", err)
	}
	return ids, nil
}
