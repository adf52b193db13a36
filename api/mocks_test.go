package api

import (
	"context"
	"time"

	"fitcoach/models"

	"github.com/stretchr/testify/mock"
)

type MockIntentService struct {
	mock.Mock
}

func (m *MockIntentService) SendMessage(ctx context.Context, userID int64, text string) (*models.ChatMessage, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockIntentService) Transcript(userID int64) ([]models.ChatMessage, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockIntentService) Reset(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) overview(args mock.Arguments) (*models.PlanOverview, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlanOverview), args.Error(1)
}

func (m *MockPlanService) plan(args mock.Arguments) (*models.WeeklyPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPlan), args.Error(1)
}

func (m *MockPlanService) result(args mock.Arguments) (*models.WorkoutResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutResult), args.Error(1)
}

func (m *MockPlanService) LoadAllPlans(ctx context.Context, userID int64) (*models.PlanOverview, error) {
	return m.overview(m.Called(ctx, userID))
}

func (m *MockPlanService) Overview(userID int64) (*models.PlanOverview, error) {
	return m.overview(m.Called(userID))
}

func (m *MockPlanService) CurrentPlan(userID int64) (*models.WeeklyPlan, error) {
	return m.plan(m.Called(userID))
}

func (m *MockPlanService) SelectPlan(userID int64, index int) (*models.PlanOverview, error) {
	return m.overview(m.Called(userID, index))
}

func (m *MockPlanService) GeneratePlan(ctx context.Context, userID int64) (*models.WeeklyPlan, error) {
	return m.plan(m.Called(ctx, userID))
}

func (m *MockPlanService) AddWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	return m.result(m.Called(ctx, userID, workout))
}

func (m *MockPlanService) AddWorkouts(ctx context.Context, userID int64, workouts []models.Workout) (int, error) {
	args := m.Called(ctx, userID, workouts)
	return args.Int(0), args.Error(1)
}

func (m *MockPlanService) UpdateWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	return m.result(m.Called(ctx, userID, workout))
}

func (m *MockPlanService) ToggleWorkout(ctx context.Context, userID, workoutID int64) (*models.WorkoutResult, error) {
	return m.result(m.Called(ctx, userID, workoutID))
}

func (m *MockPlanService) ClearDay(ctx context.Context, userID int64, dayIndex int) error {
	return m.Called(ctx, userID, dayIndex).Error(0)
}

func (m *MockPlanService) DeletePlan(ctx context.Context, userID, planID int64) error {
	return m.Called(ctx, userID, planID).Error(0)
}

func (m *MockPlanService) PlanByID(ctx context.Context, userID, planID int64) (*models.WeeklyPlan, error) {
	return m.plan(m.Called(ctx, userID, planID))
}

func (m *MockPlanService) CheckNextWeek(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanService) CopyToNextWeek(ctx context.Context, userID int64, action models.CopyAction) (*models.WeeklyPlan, error) {
	return m.plan(m.Called(ctx, userID, action))
}

func (m *MockPlanService) KnownUsers() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPlanService) Forget(userID int64) error {
	return m.Called(userID).Error(0)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) ListEvents(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) EventsByDay(ctx context.Context, userID int64) (map[string][]models.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) EventsOn(ctx context.Context, userID int64, day time.Time) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) CreateEvent(ctx context.Context, userID int64, form models.EventForm) (*models.CalendarEvent, error) {
	args := m.Called(ctx, userID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, eventID int64) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *MockEventService) ExportCalendar(ctx context.Context, userID int64, calendarName string) ([]byte, error) {
	args := m.Called(ctx, userID, calendarName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEventService) SubscriptionURL(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockTrainingLogService struct {
	mock.Mock
}

func (m *MockTrainingLogService) entry(args mock.Arguments) (*models.TrainingLogEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogService) entries(args mock.Arguments) ([]models.TrainingLogEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainingLogEntry), args.Error(1)
}

func (m *MockTrainingLogService) CreateLog(ctx context.Context, userID int64, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	return m.entry(m.Called(ctx, userID, entry))
}

func (m *MockTrainingLogService) ListLogs(ctx context.Context, userID int64) ([]models.TrainingLogEntry, error) {
	return m.entries(m.Called(ctx, userID))
}

func (m *MockTrainingLogService) LogsByDate(ctx context.Context, userID int64, date models.Date) ([]models.TrainingLogEntry, error) {
	return m.entries(m.Called(ctx, userID, date))
}

func (m *MockTrainingLogService) LogsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.TrainingLogEntry, error) {
	return m.entries(m.Called(ctx, userID, start, end))
}

func (m *MockTrainingLogService) GetLog(ctx context.Context, logID int64) (*models.TrainingLogEntry, error) {
	return m.entry(m.Called(ctx, logID))
}

func (m *MockTrainingLogService) UpdateLog(ctx context.Context, userID int64, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	return m.entry(m.Called(ctx, userID, entry))
}

func (m *MockTrainingLogService) DeleteLog(ctx context.Context, logID int64) error {
	return m.Called(ctx, logID).Error(0)
}

func (m *MockTrainingLogService) Stats(ctx context.Context, userID int64) (*models.TrainingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingStats), args.Error(1)
}

func (m *MockTrainingLogService) ExportWorkbook(ctx context.Context, userID int64, start, end models.Date) ([]byte, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) view(args mock.Arguments) (*models.MonthlyReportView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReportView), args.Error(1)
}

func (m *MockProgressService) Statistics(ctx context.Context, userID int64) (*models.MonthlyStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyStatistics), args.Error(1)
}

func (m *MockProgressService) ListReports(ctx context.Context, userID int64) ([]models.MonthlyReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlyReport), args.Error(1)
}

func (m *MockProgressService) MonthlyReport(ctx context.Context, userID int64, year, month int, refresh bool) (*models.MonthlyReportView, error) {
	return m.view(m.Called(ctx, userID, year, month, refresh))
}

func (m *MockProgressService) GenerateReport(ctx context.Context, userID int64, year, month int) (*models.MonthlyReportView, error) {
	return m.view(m.Called(ctx, userID, year, month))
}

func (m *MockProgressService) GenerateInsights(ctx context.Context, userID int64, year, month int) (string, error) {
	args := m.Called(ctx, userID, year, month)
	return args.String(0), args.Error(1)
}

func (m *MockProgressService) UpdateInsights(ctx context.Context, reportID int64, insights string) (*models.MonthlyReport, error) {
	args := m.Called(ctx, reportID, insights)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReport), args.Error(1)
}

func (m *MockProgressService) DeleteReport(ctx context.Context, reportID int64) error {
	return m.Called(ctx, reportID).Error(0)
}
