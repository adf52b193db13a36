package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"fitcoach/client"
	"fitcoach/models"
	"fitcoach/utils"

	"github.com/xuri/excelize/v2"
)

const (
	SheetTrainingLog = "Training Log"
	SheetSummary     = "Summary"
)

var (
	ErrExerciseNameRequired = errors.New("exercise name is required")
	ErrWorkoutDateRequired  = errors.New("workout date is required")
)

// TrainingLogService records what the user actually did, independent of the plan.
type TrainingLogService interface {
	CreateLog(ctx context.Context, userID int64, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error)
	ListLogs(ctx context.Context, userID int64) ([]models.TrainingLogEntry, error)
	LogsByDate(ctx context.Context, userID int64, date models.Date) ([]models.TrainingLogEntry, error)
	LogsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.TrainingLogEntry, error)
	GetLog(ctx context.Context, logID int64) (*models.TrainingLogEntry, error)
	UpdateLog(ctx context.Context, userID int64, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error)
	DeleteLog(ctx context.Context, logID int64) error
	Stats(ctx context.Context, userID int64) (*models.TrainingStats, error)
	ExportWorkbook(ctx context.Context, userID int64, start, end models.Date) ([]byte, error)
}

type trainingLogService struct {
	logs client.TrainingLogClient
}

// NewTrainingLogService creates a new instance of TrainingLogService.
func NewTrainingLogService(logs client.TrainingLogClient) TrainingLogService {
	return &trainingLogService{logs: logs}
}

func prepareEntry(userID int64, entry models.TrainingLogEntry) (models.TrainingLogEntry, error) {
	entry.ExerciseName = strings.TrimSpace(entry.ExerciseName)
	if entry.ExerciseName == "" {
		return entry, ErrExerciseNameRequired
	}
	if entry.WorkoutDate.IsZero() {
		return entry, ErrWorkoutDateRequired
	}
	if entry.WeightUnit == "" {
		entry.WeightUnit = models.DefaultWeightUnit
	}
	entry.User = &models.UserRef{ID: userID}
	return entry, nil
}

func (s *trainingLogService) CreateLog(ctx context.Context, userID int64, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	entry, err := prepareEntry(userID, entry)
	if err != nil {
		return nil, err
	}
	created, err := s.logs.CreateLog(ctx, entry)
	if err != nil {
		log.Printf("ERROR: [TrainingLogService] Failed to log '%s' for userID %d: %v", entry.ExerciseName, userID, err)
		return nil, fmt.Errorf("failed to create training log for userID %d: %w", userID, err)
	}
	log.Printf("INFO: [TrainingLogService] Logged '%s' on %s for userID %d.", created.ExerciseName, created.WorkoutDate, userID)
	return created, nil
}

func (s *trainingLogService) ListLogs(ctx context.Context, userID int64) ([]models.TrainingLogEntry, error) {
	entries, err := s.logs.ListLogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list training logs for userID %d: %w", userID, err)
	}
	return entries, nil
}

func (s *trainingLogService) LogsByDate(ctx context.Context, userID int64, date models.Date) ([]models.TrainingLogEntry, error) {
	if date.IsZero() {
		return nil, ErrWorkoutDateRequired
	}
	entries, err := s.logs.LogsByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list training logs on %s for userID %d: %w", date, userID, err)
	}
	return entries, nil
}

func (s *trainingLogService) LogsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.TrainingLogEntry, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if end.Before(start.Time) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, end, start)
	}
	entries, err := s.logs.LogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list training logs %s..%s for userID %d: %w", start, end, userID, err)
	}
	return entries, nil
}

func (s *trainingLogService) GetLog(ctx context.Context, logID int64) (*models.TrainingLogEntry, error) {
	entry, err := s.logs.GetLog(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("failed to get training log %d: %w", logID, err)
	}
	return entry, nil
}

func (s *trainingLogService) UpdateLog(ctx context.Context, userID int64, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	if entry.ID == 0 {
		return nil, fmt.Errorf("%w: training log id is required", ErrInvalidInput)
	}
	entry, err := prepareEntry(userID, entry)
	if err != nil {
		return nil, err
	}
	updated, err := s.logs.UpdateLog(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to update training log %d: %w", entry.ID, err)
	}
	return updated, nil
}

func (s *trainingLogService) DeleteLog(ctx context.Context, logID int64) error {
	if err := s.logs.DeleteLog(ctx, logID); err != nil {
		return fmt.Errorf("failed to delete training log %d: %w", logID, err)
	}
	log.Printf("INFO: [TrainingLogService] Deleted training log %d.", logID)
	return nil
}

func (s *trainingLogService) Stats(ctx context.Context, userID int64) (*models.TrainingStats, error) {
	stats, err := s.logs.LogStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load training stats for userID %d: %w", userID, err)
	}
	return stats, nil
}

// GroupByDate buckets entries by workout day key.
func GroupByDate(entries []models.TrainingLogEntry) map[string][]models.TrainingLogEntry {
	grouped := make(map[string][]models.TrainingLogEntry)
	for _, entry := range entries {
		key := utils.DayKey(entry.WorkoutDate.Time)
		grouped[key] = append(grouped[key], entry)
	}
	return grouped
}

// ExportWorkbook returns the user's log as an .xlsx file. Zero start and end export everything.
func (s *trainingLogService) ExportWorkbook(ctx context.Context, userID int64, start, end models.Date) ([]byte, error) {
	var (
		entries []models.TrainingLogEntry
		err     error
	)
	if start.IsZero() && end.IsZero() {
		entries, err = s.ListLogs(ctx, userID)
	} else {
		entries, err = s.LogsInRange(ctx, userID, start, end)
	}
	if err != nil {
		return nil, err
	}

	f, err := BuildTrainingWorkbook(entries)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write training workbook: %w", err)
	}
	log.Printf("INFO: [TrainingLogService] Exported %d log entries for userID %d.", len(entries), userID)
	return buf.Bytes(), nil
}

var trainingLogHeader = []interface{}{
	"Date", "Exercise", "Sets", "Reps", "Weight", "Unit", "Volume", "Rest (s)", "Duration (min)", "Calories", "Difficulty", "Notes",
}

// BuildTrainingWorkbook lays entries out oldest first on a log sheet and totals them per exercise.
func BuildTrainingWorkbook(entries []models.TrainingLogEntry) (*excelize.File, error) {
	sorted := make([]models.TrainingLogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WorkoutDate.Before(sorted[j].WorkoutDate.Time)
	})

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetTrainingLog); err != nil {
		return nil, fmt.Errorf("failed to name log sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(SheetTrainingLog, "A1", &trainingLogHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetTrainingLog, "A1", "L1", header); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetTrainingLog, "A", "A", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetTrainingLog, "B", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetTrainingLog, "L", "L", 40); err != nil {
		return nil, err
	}

	type exerciseTotal struct {
		sessions int
		sets     int
		volume   float64
	}
	totals := make(map[string]*exerciseTotal)
	var names []string

	for i, entry := range sorted {
		row := []interface{}{
			entry.WorkoutDate.String(),
			entry.ExerciseName,
			entry.Sets,
			entry.Reps,
			entry.Weight,
			entry.WeightUnit,
			entry.Volume(),
			entry.RestSeconds,
			entry.DurationMinutes,
			optionalInt(entry.CaloriesBurned),
			optionalInt(entry.DifficultyRating),
			entry.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetTrainingLog, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write log row %d: %w", i+2, err)
		}

		total, ok := totals[entry.ExerciseName]
		if !ok {
			total = &exerciseTotal{}
			totals[entry.ExerciseName] = total
			names = append(names, entry.ExerciseName)
		}
		total.sessions++
		total.sets += entry.Sets
		total.volume += entry.Volume()
	}

	summaryHeader := []interface{}{"Exercise", "Sessions", "Total Sets", "Total Volume"}
	if err := f.SetSheetRow(SheetSummary, "A1", &summaryHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "D1", header); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		return nil, err
	}
	sort.Strings(names)
	for i, name := range names {
		total := totals[name]
		row := []interface{}{name, total.sessions, total.sets, total.volume}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row %d: %w", i+2, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
