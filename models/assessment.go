package models

// Background is how long and how regularly the user has trained.
type Background string

const (
	BackgroundNew         Background = "new"
	BackgroundOnOff       Background = "onoff"
	BackgroundConsistent  Background = "consistent"
	BackgroundExperienced Background = "experienced"
)

// Recency is the time since the last structured session.
type Recency string

const (
	RecencyWithinWeek     Recency = "within1w"
	RecencyOneToFourWeeks Recency = "1to4w"
	RecencyOneToThreeMon  Recency = "1to3m"
	RecencyOverThreeMon   Recency = "over3m"
)

// BMIBand is a rough body-mass band.
type BMIBand string

const (
	BMILight    BMIBand = "light"
	BMITypical  BMIBand = "typical"
	BMIABitHigh BMIBand = "abitHigh"
	BMIHigh     BMIBand = "high"
)

// IntensityFlags are same-day readiness flags.
type IntensityFlags struct {
	LowSleep bool `json:"lowSleep"`
	Sore     bool `json:"sore"`
	Pain     bool `json:"pain"`
}

// IntensityInput is the quick-intensity form.
type IntensityInput struct {
	Background Background     `json:"background"`
	Recency    Recency        `json:"recency"`
	BMIBand    BMIBand        `json:"bmiBand"`
	Flags      IntensityFlags `json:"flags"`
}

// IntensityTier is a recommended training intensity.
type IntensityTier string

const (
	TierRecovery IntensityTier = "Recovery (Very Easy)"
	TierBase     IntensityTier = "Base (Easy–Moderate)"
	TierBuild    IntensityTier = "Build (Moderate–Challenging)"
	TierPeak     IntensityTier = "Peak (Challenging)"
)

var IntensityTiers = []IntensityTier{TierRecovery, TierBase, TierBuild, TierPeak}

var (
	Backgrounds = []Background{BackgroundNew, BackgroundOnOff, BackgroundConsistent, BackgroundExperienced}
	Recencies   = []Recency{RecencyWithinWeek, RecencyOneToFourWeeks, RecencyOneToThreeMon, RecencyOverThreeMon}
	BMIBands    = []BMIBand{BMILight, BMITypical, BMIABitHigh, BMIHigh}
)

// Objectives offered by the objectives form.
var Objectives = []string{
	"Strength",
	"Hypertrophy (Muscle Growth)",
	"Endurance",
	"Weight Loss / Fat Loss",
	"General Fitness",
	"Athletic Performance",
}

// IntensityForm is the inline state of an intensity_prompt message.
type IntensityForm struct {
	Backgrounds []Background   `json:"backgrounds"`
	Recencies   []Recency      `json:"recencies"`
	BMIBands    []BMIBand      `json:"bmiBands"`
	Selection   IntensityInput `json:"selection"`
	Submitted   bool           `json:"submitted"`
}

// ObjectivesForm is the inline state of an objectives_prompt message.
type ObjectivesForm struct {
	Options   []string `json:"options"`
	Selected  []string `json:"selected"`
	Submitted bool     `json:"submitted"`
}

// IntensityResult is returned after the intensity form is submitted.
type IntensityResult struct {
	Tier    IntensityTier `json:"tier"`
	Summary ChatMessage   `json:"summary"`
	Reply   ChatMessage   `json:"reply"`
}
