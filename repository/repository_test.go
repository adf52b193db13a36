package repository

import (
	"fmt"
	"testing"
	"time"

	"fitcoach/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PlanSnapshot{}))
	return db
}

func TestPlanRepository_Snapshot(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))
	now := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

	t.Run("Unknown user has no snapshot", func(t *testing.T) {
		snapshot, err := repo.GetSnapshot(1)
		assert.NoError(t, err)
		assert.Nil(t, snapshot)

		plans, idx, err := repo.GetPlans(1)
		assert.NoError(t, err)
		assert.Empty(t, plans)
		assert.Equal(t, -1, idx)
	})

	t.Run("Save replaces the previous snapshot wholesale", func(t *testing.T) {
		first := []models.WeeklyPlan{{ID: 1}, {ID: 2}}
		require.NoError(t, repo.SaveSnapshot(2, first, 1, now))

		second := []models.WeeklyPlan{{ID: 3, WorkoutsByDay: map[int][]models.Workout{
			2: {{ID: 9, DayIndex: 2, WorkoutName: "Squats", Sets: 3, Reps: 10}},
		}}}
		require.NoError(t, repo.SaveSnapshot(2, second, 0, now.Add(time.Hour)))

		plans, idx, err := repo.GetPlans(2)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, int64(3), plans[0].ID)
		assert.Equal(t, "Squats", plans[0].Workouts(2)[0].WorkoutName)
		assert.Equal(t, 0, idx)

		ids, err := repo.ListUserIDs()
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, ids)
	})

	t.Run("Selection updates and deletes", func(t *testing.T) {
		require.NoError(t, repo.SaveSnapshot(3, []models.WeeklyPlan{{ID: 1}, {ID: 2}}, 1, now))
		require.NoError(t, repo.UpdateSelection(3, 0))
		_, idx, err := repo.GetPlans(3)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)

		assert.Error(t, repo.UpdateSelection(404, 0))

		require.NoError(t, repo.DeleteSnapshot(3))
		snapshot, err := repo.GetSnapshot(3)
		assert.NoError(t, err)
		assert.Nil(t, snapshot)
	})
}

func TestChatRepository(t *testing.T) {
	repo := NewChatRepository()

	t.Run("Sequence ids are per user", func(t *testing.T) {
		a1, err := repo.SaveMessage(models.ChatMessage{UserID: 1, Type: models.MessageTypeAI, Content: "welcome"})
		require.NoError(t, err)
		a2, _ := repo.SaveMessage(models.ChatMessage{UserID: 1, Type: models.MessageTypeUser, Content: "hi"})
		b1, _ := repo.SaveMessage(models.ChatMessage{UserID: 2, Type: models.MessageTypeAI, Content: "welcome"})

		assert.Equal(t, uint(1), a1.ID)
		assert.Equal(t, uint(2), a2.ID)
		assert.Equal(t, uint(1), b1.ID)
	})

	t.Run("Missing user id is rejected", func(t *testing.T) {
		_, err := repo.SaveMessage(models.ChatMessage{Content: "x"})
		assert.Error(t, err)
	})

	t.Run("Returned transcripts are copies", func(t *testing.T) {
		msgs, err := repo.GetMessagesByUserID(1)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		msgs[0].Content = "changed"

		again, _ := repo.GetMessagesByUserID(1)
		assert.Equal(t, "welcome", again[0].Content)
	})

	t.Run("Update and clear", func(t *testing.T) {
		msgs, err := repo.GetMessagesByUserID(1)
		require.NoError(t, err)
		msg := msgs[1]
		msg.Content = "hello"
		require.NoError(t, repo.UpdateMessage(msg))
		updated, _ := repo.GetMessagesByUserID(1)
		assert.Equal(t, "hello", updated[1].Content)

		assert.Error(t, repo.UpdateMessage(models.ChatMessage{ID: 9, UserID: 1}))

		require.NoError(t, repo.ClearMessages(1))
		msgs, _ = repo.GetMessagesByUserID(1)
		assert.Empty(t, msgs)
	})
}
