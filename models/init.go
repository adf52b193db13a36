package models

// InitResponse is returned by /api/init to bootstrap a coach session.
type InitResponse struct {
	UserID        int64          `json:"userId"`
	Transcript    []ChatMessage  `json:"transcript"`
	Window        []WeekDay      `json:"window"`
	SelectedIndex int            `json:"selectedIndex"`
	Plans         *PlanOverview  `json:"plans,omitempty"`
	Intensity     IntensityForm  `json:"intensity"`
	Objectives    ObjectivesForm `json:"objectives"`
	CopyActions   []CopyAction   `json:"copyActions"`
}
