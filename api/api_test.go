package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fitcoach/client"
	"fitcoach/middleware"
	"fitcoach/models"
	"fitcoach/repository"
	"fitcoach/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Details   string          `json:"details"`
	RequestID string          `json:"requestId"`
}

type testServer struct {
	router   *gin.Engine
	sessions services.SessionService
	intent   *MockIntentService
	plans    *MockPlanService
	events   *MockEventService
	logs     *MockTrainingLogService
	progress *MockProgressService
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)
	now := func() time.Time { return time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local) }
	ts := &testServer{
		sessions: services.NewSessionService(now),
		intent:   new(MockIntentService),
		plans:    new(MockPlanService),
		events:   new(MockEventService),
		logs:     new(MockTrainingLogService),
		progress: new(MockProgressService),
	}
	assessment := services.NewAssessmentService(repository.NewChatRepository(), nil)
	handler := NewAPIHandler(ts.sessions, assessment, ts.intent, ts.plans, ts.events, ts.logs, ts.progress, nil, "")

	r := gin.New()
	r.Use(middleware.RequestID())
	handler.RegisterRoutes(r)
	ts.router = r
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRequestID(t *testing.T) {
	ts := newTestServer()

	t.Run("Incoming ids are echoed on errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/init", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, w.Body.String(), `"requestId":"req-123"`)
	})

	t.Run("Missing ids are generated", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/init", nil)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), env.RequestID)
	})
}

func TestInitHandler(t *testing.T) {
	t.Run("userId is required and must be numeric", func(t *testing.T) {
		ts := newTestServer()
		w, env := ts.do(t, http.MethodGet, "/api/init", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "userId is required.", env.Error)

		w, _ = ts.do(t, http.MethodGet, "/api/init?userId=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Bootstraps transcript, window and plans", func(t *testing.T) {
		ts := newTestServer()
		ts.intent.On("Transcript", int64(7)).Return([]models.ChatMessage{{ID: 1, Content: services.WelcomeMessage}}, nil).Once()
		ts.plans.On("LoadAllPlans", mock.Anything, int64(7)).Return(&models.PlanOverview{SelectedIndex: -1}, nil).Once()

		w, env := ts.do(t, http.MethodGet, "/api/init?userId=7", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 200, env.Code)

		var data models.InitResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(7), data.UserID)
		assert.Len(t, data.Window, 7)
		assert.Equal(t, 0, data.SelectedIndex)
		assert.Equal(t, "2025-01-08", data.Window[0].Key)
		assert.Equal(t, 2, data.Window[0].DayIndex)
		assert.Len(t, data.CopyActions, 3)
		assert.Len(t, data.Intensity.Backgrounds, 4)
		require.NotNil(t, data.Plans)
		ts.plans.AssertExpectations(t)
	})

	t.Run("Backend failure falls back to the cached plans", func(t *testing.T) {
		ts := newTestServer()
		ts.intent.On("Transcript", int64(7)).Return([]models.ChatMessage{}, nil).Once()
		ts.plans.On("LoadAllPlans", mock.Anything, int64(7)).Return(nil, errors.New("backend down")).Once()
		ts.plans.On("Overview", int64(7)).Return(&models.PlanOverview{Plans: []models.WeeklyPlan{{ID: 3}}}, nil).Once()

		w, env := ts.do(t, http.MethodGet, "/api/init?userId=7", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data models.InitResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.NotNil(t, data.Plans)
		assert.Len(t, data.Plans.Plans, 1)
	})
}

func TestCoachHandlers(t *testing.T) {
	t.Run("A reply is returned with the window", func(t *testing.T) {
		ts := newTestServer()
		ts.intent.On("SendMessage", mock.Anything, int64(5), "add squats").
			Return(&models.ChatMessage{ID: 3, Type: models.MessageTypeAI, Content: "Added squats!"}, nil).Once()

		w, env := ts.do(t, http.MethodPost, "/api/coach/messages?userId=5", SendMessageRequest{Message: "add squats"})
		require.Equal(t, http.StatusOK, w.Code)
		var data SendMessageResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Added squats!", data.Reply.Content)
		assert.Len(t, data.Window.Days, 7)
	})

	t.Run("A busy session is a conflict", func(t *testing.T) {
		ts := newTestServer()
		ts.intent.On("SendMessage", mock.Anything, int64(5), "again").Return(nil, services.ErrSessionBusy).Once()

		w, _ := ts.do(t, http.MethodPost, "/api/coach/messages?userId=5", SendMessageRequest{Message: "again"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("An empty body is rejected before the dispatcher", func(t *testing.T) {
		ts := newTestServer()
		w, _ := ts.do(t, http.MethodPost, "/api/coach/messages?userId=5", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		ts.intent.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Recommend evaluates the table without a session", func(t *testing.T) {
		ts := newTestServer()
		input := models.IntensityInput{Background: models.BackgroundExperienced, Recency: models.RecencyWithinWeek, BMIBand: models.BMITypical}
		w, env := ts.do(t, http.MethodPost, "/api/coach/recommend", input)
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			Tier models.IntensityTier `json:"tier"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, services.RecommendIntensity(input), data.Tier)
	})

	t.Run("Intensity submission appends the recommendation", func(t *testing.T) {
		ts := newTestServer()
		w, _ := ts.do(t, http.MethodPost, "/api/coach/intensity/prompt?userId=5", nil)
		require.Equal(t, http.StatusOK, w.Code)

		input := models.IntensityInput{Background: models.BackgroundNew, Recency: models.RecencyOverThreeMon}
		w, env := ts.do(t, http.MethodPost, "/api/coach/intensity?userId=5", input)
		require.Equal(t, http.StatusOK, w.Code)
		var result models.IntensityResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, services.RecommendIntensity(input), result.Tier)
	})

	t.Run("Unknown objectives are a bad request", func(t *testing.T) {
		ts := newTestServer()
		w, _ := ts.do(t, http.MethodPost, "/api/coach/objectives?userId=5", ObjectivesRequest{Goals: []string{"Juggling"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCalendarHandlers(t *testing.T) {
	t.Run("Month grid has 42 cells", func(t *testing.T) {
		ts := newTestServer()
		w, env := ts.do(t, http.MethodGet, "/api/calendar/grid?month=2025-02&selected=2025-02-14", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data MonthGridResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data.Days, 42)
		assert.Equal(t, "February 2025", data.Label)

		selected := 0
		for _, day := range data.Days {
			if day.IsSelected {
				selected++
				assert.Equal(t, "2025-02-14", day.Key)
			}
		}
		assert.Equal(t, 1, selected)
	})

	t.Run("Bad month is rejected", func(t *testing.T) {
		ts := newTestServer()
		w, _ := ts.do(t, http.MethodGet, "/api/calendar/grid?month=Feb", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Selecting a day moves the window selection", func(t *testing.T) {
		ts := newTestServer()
		idx := 3
		w, env := ts.do(t, http.MethodPut, "/api/calendar/week/selected?userId=5", SelectDayRequest{DisplayIndex: &idx})
		require.Equal(t, http.StatusOK, w.Code)
		var window models.WeekWindow
		require.NoError(t, json.Unmarshal(env.Data, &window))
		assert.Equal(t, 3, window.SelectedIndex)

		bad := 7
		w, _ = ts.do(t, http.MethodPut, "/api/calendar/week/selected?userId=5", SelectDayRequest{DisplayIndex: &bad})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Week view buckets the current plan", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("CurrentPlan", int64(5)).Return(&models.WeeklyPlan{ID: 1, WorkoutsByDay: map[int][]models.Workout{
			2: {{ID: 4, DayIndex: 2, WorkoutName: "Squats"}},
		}}, nil).Once()

		w, env := ts.do(t, http.MethodGet, "/api/calendar/week?userId=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data WeekResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Len(t, data.Days, 7)
		assert.Equal(t, "Squats", data.Days[0].Workouts[0].WorkoutName)
		assert.Equal(t, models.RestLabel, data.Days[1].MuscleGroup)
	})

	t.Run("Monday layout starts the week on Monday", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("CurrentPlan", int64(5)).Return(nil, nil).Once()

		w, env := ts.do(t, http.MethodGet, "/api/calendar/week?userId=5&layout=monday", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data WeekResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Len(t, data.Window.Days, 7)
		assert.Equal(t, 0, data.Window.Days[0].DayIndex)
		assert.Equal(t, "Monday", data.Window.Days[0].Label)

		w, _ = ts.do(t, http.MethodGet, "/api/calendar/week?userId=5&layout=iso", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Day view uses the week-of-month header", func(t *testing.T) {
		ts := newTestServer()
		day, err := models.ParseDate("2025-03-20")
		require.NoError(t, err)
		ts.events.On("EventsOn", mock.Anything, int64(5), day.Time).Return([]models.CalendarEvent{{ID: 1, Title: "Yoga"}}, nil).Once()
		ts.logs.On("LogsByDate", mock.Anything, int64(5), day).Return(nil, nil).Once()

		w, env := ts.do(t, http.MethodGet, "/api/calendar/day?userId=5&date=2025-03-20", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data DayViewResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Week 3, 2025", data.Header)
		assert.Len(t, data.Events, 1)
		assert.NotNil(t, data.TrainingLogs)
	})

	t.Run("Event validation errors are bad requests", func(t *testing.T) {
		ts := newTestServer()
		ts.events.On("CreateEvent", mock.Anything, int64(5), mock.Anything).Return(nil, services.ErrEventFieldsRequired).Once()

		w, env := ts.do(t, http.MethodPost, "/api/calendar/events?userId=5", models.EventForm{Title: "Yoga"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title and date required", env.Details)
	})

	t.Run("Export downloads an ics file", func(t *testing.T) {
		ts := newTestServer()
		ts.events.On("ExportCalendar", mock.Anything, int64(5), services.DefaultCalendarName).Return([]byte("BEGIN:VCALENDAR"), nil).Once()

		w, _ := ts.do(t, http.MethodGet, "/api/calendar/export?userId=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "fitness-calendar-5.ics")
		assert.Equal(t, "BEGIN:VCALENDAR", w.Body.String())
	})
}

func TestPlanHandlers(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Existing plan", services.ErrPlanExists, http.StatusConflict},
		{"Backend rejection", &client.APIError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
		{"Backend not found", &client.APIError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{"Local failure", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("Generate maps %s to %d", tc.name, tc.status), func(t *testing.T) {
			ts := newTestServer()
			ts.plans.On("GeneratePlan", mock.Anything, int64(5)).Return(nil, fmt.Errorf("wrapped: %w", tc.err)).Once()
			w, _ := ts.do(t, http.MethodPost, "/api/plans/generate?userId=5", nil)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	t.Run("Clearing a day without a plan is not found", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("ClearDay", mock.Anything, int64(5), 1).Return(services.ErrNoPlan).Once()
		w, env := ts.do(t, http.MethodDelete, "/api/plans/days/1?userId=5", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, services.ErrNoPlan.Error(), env.Error)
	})

	t.Run("Clearing a day confirms with the day name", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("ClearDay", mock.Anything, int64(5), 2).Return(nil).Once()
		w, env := ts.do(t, http.MethodDelete, "/api/plans/days/2?userId=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Cleared all workouts for Wednesday.", env.Message)
	})

	t.Run("ICS export needs a plan", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("CurrentPlan", int64(5)).Return(nil, nil).Once()
		w, _ := ts.do(t, http.MethodGet, "/api/plans/current/ics?userId=5", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Cancelled copy makes no plan", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("CopyToNextWeek", mock.Anything, int64(5), models.CopyActionCancel).Return(nil, nil).Once()
		w, env := ts.do(t, http.MethodPost, "/api/plans/copy-to-next-week?userId=5", CopyRequest{Action: models.CopyActionCancel})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Copy cancelled.", env.Message)
	})

	t.Run("Copy without an action is rejected", func(t *testing.T) {
		ts := newTestServer()
		w, _ := ts.do(t, http.MethodPost, "/api/plans/copy-to-next-week?userId=5", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		ts.plans.AssertNotCalled(t, "CopyToNextWeek", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("A plan is fetched by id and a missing one stays not found", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("PlanByID", mock.Anything, int64(5), int64(3)).Return(&models.WeeklyPlan{ID: 3}, nil).Once()
		ts.plans.On("PlanByID", mock.Anything, int64(5), int64(4)).
			Return(nil, fmt.Errorf("wrapped: %w", &client.APIError{StatusCode: http.StatusNotFound})).Once()

		w, env := ts.do(t, http.MethodGet, "/api/plans/3?userId=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var plan models.WeeklyPlan
		require.NoError(t, json.Unmarshal(env.Data, &plan))
		assert.Equal(t, int64(3), plan.ID)

		w, _ = ts.do(t, http.MethodGet, "/api/plans/4?userId=5", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = ts.do(t, http.MethodGet, "/api/plans/abc?userId=5", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Workout updates carry the path id", func(t *testing.T) {
		ts := newTestServer()
		ts.plans.On("UpdateWorkout", mock.Anything, int64(5), mock.MatchedBy(func(w models.Workout) bool {
			return w.ID == 12 && w.WorkoutName == "Lunges"
		})).Return(&models.WorkoutResult{Success: true}, nil).Once()
		w, _ := ts.do(t, http.MethodPut, "/api/plans/workouts/12?userId=5", models.Workout{WorkoutName: "Lunges", DayIndex: 1})
		assert.Equal(t, http.StatusOK, w.Code)
		ts.plans.AssertExpectations(t)
	})
}

func TestTrainingLogAndReportHandlers(t *testing.T) {
	t.Run("Export defaults to the current month", func(t *testing.T) {
		ts := newTestServer()
		ts.logs.On("ExportWorkbook", mock.Anything, int64(5), mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				start := args.Get(2).(models.Date)
				end := args.Get(3).(models.Date)
				assert.Equal(t, 1, start.Day())
				assert.Equal(t, start.Month(), end.Month())
			}).
			Return([]byte("xlsx"), nil).Once()

		w, _ := ts.do(t, http.MethodGet, "/api/training-log/export?userId=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		ts.logs.AssertExpectations(t)
	})

	t.Run("Bad dates are rejected", func(t *testing.T) {
		ts := newTestServer()
		w, _ := ts.do(t, http.MethodGet, "/api/training-log/by-date?userId=5&date=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Static training-log routes win over ids", func(t *testing.T) {
		ts := newTestServer()
		ts.logs.On("Stats", mock.Anything, int64(5)).Return(&models.TrainingStats{TotalWorkouts: 4}, nil).Once()
		w, _ := ts.do(t, http.MethodGet, "/api/training-log/stats?userId=5", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Monthly report passes refresh through", func(t *testing.T) {
		ts := newTestServer()
		ts.progress.On("MonthlyReport", mock.Anything, int64(5), 2025, 2, true).
			Return(&models.MonthlyReportView{Statistics: models.MonthlyStatistics{TotalWorkouts: 3}}, nil).Once()
		w, _ := ts.do(t, http.MethodGet, "/api/reports/2025/2?userId=5&refresh=true", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		ts.progress.AssertExpectations(t)
	})

	t.Run("Insight failures stay a server error", func(t *testing.T) {
		ts := newTestServer()
		ts.progress.On("GenerateInsights", mock.Anything, int64(5), 2025, 2).Return("", errors.New("agent down")).Once()
		w, env := ts.do(t, http.MethodPost, "/api/reports/2025/2/insights?userId=5", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "AI insights are temporarily unavailable.", env.Error)
	})

	t.Run("Reports are deleted by id", func(t *testing.T) {
		ts := newTestServer()
		ts.progress.On("DeleteReport", mock.Anything, int64(31)).Return(nil).Once()
		w, _ := ts.do(t, http.MethodDelete, "/api/reports/by-id/31", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
