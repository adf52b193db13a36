package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitcoach/models"

	"github.com/stretchr/testify/mock"
)

// MockPlanClient is a mock type for the client.PlanClient interface
type MockPlanClient struct {
	mock.Mock
}

func (m *MockPlanClient) GeneratePlan(ctx context.Context, userID int64) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPlan), args.Error(1)
}

func (m *MockPlanClient) ListPlans(ctx context.Context, userID int64) ([]models.WeeklyPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeeklyPlan), args.Error(1)
}

func (m *MockPlanClient) GetPlan(ctx context.Context, userID, planID int64) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPlan), args.Error(1)
}

func (m *MockPlanClient) AddWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	args := m.Called(ctx, userID, workout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutResult), args.Error(1)
}

func (m *MockPlanClient) UpdateWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	args := m.Called(ctx, userID, workout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutResult), args.Error(1)
}

func (m *MockPlanClient) ToggleWorkout(ctx context.Context, userID, workoutID int64) (*models.WorkoutResult, error) {
	args := m.Called(ctx, userID, workoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutResult), args.Error(1)
}

func (m *MockPlanClient) ClearDay(ctx context.Context, userID, planID int64, dayIndex int) error {
	args := m.Called(ctx, userID, planID, dayIndex)
	return args.Error(0)
}

func (m *MockPlanClient) DeletePlan(ctx context.Context, userID, planID int64) error {
	args := m.Called(ctx, userID, planID)
	return args.Error(0)
}

func (m *MockPlanClient) CheckCurrentWeek(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanClient) CheckNextWeek(ctx context.Context, userID, currentPlanID int64) (bool, error) {
	args := m.Called(ctx, userID, currentPlanID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanClient) CopyToNextWeek(ctx context.Context, userID, currentPlanID int64, action models.CopyAction) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, userID, currentPlanID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPlan), args.Error(1)
}

// MockChatClient is a mock type for the client.ChatClient interface
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Chat(ctx context.Context, agentType string, userID int64, req models.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, agentType, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatResponse), args.Error(1)
}

func (m *MockChatClient) FitnessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatResponse), args.Error(1)
}

// MockClassifier is a mock type for the IntentClassifier interface
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, userID int64, prompt string) (string, error) {
	args := m.Called(ctx, userID, prompt)
	return args.String(0), args.Error(1)
}

// MockEventClient is a mock type for the client.EventClient interface
type MockEventClient struct {
	mock.Mock
}

func (m *MockEventClient) ListEvents(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CalendarEvent), args.Error(1)
}

func (m *MockEventClient) CreateEvent(ctx context.Context, req models.CreateEventRequest) (*models.CalendarEvent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarEvent), args.Error(1)
}

func (m *MockEventClient) DeleteEvent(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventClient) ExportCalendar(ctx context.Context, userID int64, calendarName string) ([]byte, error) {
	args := m.Called(ctx, userID, calendarName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEventClient) SubscriptionURL(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// MockTrainingLogClient is a mock type for the client.TrainingLogClient interface
type MockTrainingLogClient struct {
	mock.Mock
}

func (m *MockTrainingLogClient) CreateLog(ctx context.Context, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogClient) ListLogs(ctx context.Context, userID int64) ([]models.TrainingLogEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogClient) LogsByDate(ctx context.Context, userID int64, date models.Date) ([]models.TrainingLogEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogClient) LogsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.TrainingLogEntry, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogClient) GetLog(ctx context.Context, logID int64) (*models.TrainingLogEntry, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogClient) UpdateLog(ctx context.Context, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogClient) DeleteLog(ctx context.Context, logID int64) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

func (m *MockTrainingLogClient) LogStats(ctx context.Context, userID int64) (*models.TrainingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingStats), args.Error(1)
}

// MockReportClient is a mock type for the client.ReportClient interface
type MockReportClient struct {
	mock.Mock
}

func (m *MockReportClient) Statistics(ctx context.Context, userID int64) (*models.MonthlyStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyStatistics), args.Error(1)
}

func (m *MockReportClient) ListReports(ctx context.Context, userID int64) ([]models.MonthlyReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlyReport), args.Error(1)
}

func (m *MockReportClient) ReportForMonth(ctx context.Context, userID int64, year, month int, refresh bool) (*models.MonthlyReport, error) {
	args := m.Called(ctx, userID, year, month, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReport), args.Error(1)
}

func (m *MockReportClient) GenerateReport(ctx context.Context, userID int64, year, month int) (*models.MonthlyReport, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReport), args.Error(1)
}

func (m *MockReportClient) UpdateInsights(ctx context.Context, reportID int64, insights string) (*models.MonthlyReport, error) {
	args := m.Called(ctx, reportID, insights)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReport), args.Error(1)
}

func (m *MockReportClient) DeleteReport(ctx context.Context, reportID int64) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

// MockProfileClient is a mock type for the client.ProfileClient interface
type MockProfileClient struct {
	mock.Mock
}

func (m *MockProfileClient) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileClient) SaveProfile(ctx context.Context, userID int64, profile models.UserProfile) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

// fakePlanRepository keeps snapshots in memory so plan tests can follow refresh-after-write.
type fakePlanRepository struct {
	mu        sync.Mutex
	plans     map[int64][]models.WeeklyPlan
	selected  map[int64]int
	refreshed map[int64]time.Time
	saves     int
}

func newFakePlanRepository() *fakePlanRepository {
	return &fakePlanRepository{
		plans:     make(map[int64][]models.WeeklyPlan),
		selected:  make(map[int64]int),
		refreshed: make(map[int64]time.Time),
	}
}

func (r *fakePlanRepository) SaveSnapshot(userID int64, plans []models.WeeklyPlan, selectedIndex int, refreshedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[userID] = plans
	r.selected[userID] = selectedIndex
	r.refreshed[userID] = refreshedAt
	r.saves++
	return nil
}

func (r *fakePlanRepository) GetSnapshot(userID int64) (*models.PlanSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[userID]; !ok {
		return nil, nil
	}
	return &models.PlanSnapshot{UserID: userID, SelectedIndex: r.selected[userID], RefreshedAt: r.refreshed[userID]}, nil
}

func (r *fakePlanRepository) GetPlans(userID int64) ([]models.WeeklyPlan, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plans, ok := r.plans[userID]
	if !ok {
		return nil, -1, nil
	}
	return plans, r.selected[userID], nil
}

func (r *fakePlanRepository) UpdateSelection(userID int64, selectedIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[userID]; !ok {
		return errors.New("plan snapshot not found")
	}
	r.selected[userID] = selectedIndex
	return nil
}

func (r *fakePlanRepository) DeleteSnapshot(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plans, userID)
	delete(r.selected, userID)
	return nil
}

func (r *fakePlanRepository) ListUserIDs() ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id := range r.plans {
		ids = append(ids, id)
	}
	return ids, nil
}

// fixedClock returns a now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// samplePlan builds a plan starting on Monday 2025-01-06 with the given day buckets.
func samplePlan(id int64, days map[int][]models.Workout) models.WeeklyPlan {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	return models.WeeklyPlan{
		ID:            id,
		StartDate:     models.NewDate(start),
		EndDate:       models.NewDate(start.AddDate(0, 0, 6)),
		WorkoutsByDay: days,
	}
}

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) equipmentList(args mock.Arguments) ([]models.GymEquipment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GymEquipment), args.Error(1)
}

func (m *MockCatalogClient) ListEquipment(ctx context.Context) ([]models.GymEquipment, error) {
	return m.equipmentList(m.Called(ctx))
}

func (m *MockCatalogClient) GetEquipment(ctx context.Context, name string) (*models.GymEquipment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GymEquipment), args.Error(1)
}

func (m *MockCatalogClient) SearchEquipment(ctx context.Context, keyword string) ([]models.GymEquipment, error) {
	return m.equipmentList(m.Called(ctx, keyword))
}

func (m *MockCatalogClient) EquipmentByMuscle(ctx context.Context, muscle string) ([]models.GymEquipment, error) {
	return m.equipmentList(m.Called(ctx, muscle))
}
