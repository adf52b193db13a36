package models

// MonthlyStatistics is the current-month summary from /api/monthly-reports/statistics.
type MonthlyStatistics struct {
	TotalWorkouts  int     `json:"totalWorkouts"`
	TotalMinutes   int     `json:"totalMinutes"`
	CaloriesBurned int     `json:"caloriesBurned"`
	CurrentStreak  int     `json:"currentStreak"`
	AdherenceRate  float64 `json:"adherenceRate"`
}

// MonthlyReport is one user+month aggregate. WeeklyActivityData and TopExercises hold JSON text.
type MonthlyReport struct {
	ID                        int64     `json:"id,omitempty"`
	UserID                    int64     `json:"userId"`
	ReportMonth               Date      `json:"reportMonth"`
	TotalSessions             int       `json:"totalSessions"`
	TotalDurationMinutes      int       `json:"totalDurationMinutes"`
	TotalCaloriesBurned       int       `json:"totalCaloriesBurned"`
	GoalAchievementPercentage float64   `json:"goalAchievementPercentage"`
	ReportData                string    `json:"reportData,omitempty"`
	AIInsights                string    `json:"aiInsights,omitempty"`
	CurrentStreakDays         int       `json:"currentStreakDays"`
	WeeklyActivityData        string    `json:"weeklyActivityData,omitempty"`
	TopExercises              string    `json:"topExercises,omitempty"`
	GeneratedAt               *DateTime `json:"generatedAt,omitempty"`
}

// WeeklyActivity is one row of the weekly activity breakdown.
type WeeklyActivity struct {
	Week     string `json:"week"`
	Workouts int    `json:"workouts"`
	Minutes  int    `json:"minutes"`
}

// TopExercise is one row of the top-exercises breakdown.
type TopExercise struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MonthlyReportView is a report with its breakdowns decoded.
type MonthlyReportView struct {
	Report         *MonthlyReport    `json:"report,omitempty"`
	Statistics     MonthlyStatistics `json:"statistics"`
	WeeklyActivity []WeeklyActivity  `json:"weeklyActivity"`
	TopExercises   []TopExercise     `json:"topExercises"`
}

// InsightsRequest is the body of PUT /api/monthly-reports/{id}/ai-insights.
type InsightsRequest struct {
	AIInsights string `json:"aiInsights"`
}
