package models

// UserProfile is the body of /api/user-profiles/by-user/{id}.
type UserProfile struct {
	ID       int64   `json:"id,omitempty"`
	Age      int     `json:"age,omitempty"`
	Gender   string  `json:"gender,omitempty"`
	HeightCm float64 `json:"heightCm,omitempty"`
	WeightKg float64 `json:"weightKg,omitempty"`
}

// BMI returns 0 when height or weight is unknown.
func (p *UserProfile) BMI() float64 {
	if p == nil || p.HeightCm <= 0 || p.WeightKg <= 0 {
		return 0
	}
	m := p.HeightCm / 100
	return p.WeightKg / (m * m)
}

// BMIBand maps the profile's BMI onto the intensity form's bands. Empty when BMI is unknown.
func (p *UserProfile) BMIBand() BMIBand {
	bmi := p.BMI()
	switch {
	case bmi == 0:
		return ""
	case bmi < 18.5:
		return BMILight
	case bmi < 25:
		return BMITypical
	case bmi < 30:
		return BMIABitHigh
	default:
		return BMIHigh
	}
}

// GymEquipment is an entry of the static equipment catalog.
type GymEquipment struct {
	ID                    int64    `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description,omitempty"`
	PrimaryMuscles        []string `json:"primaryMuscles,omitempty"`
	AlternativeEquipments []string `json:"alternativeEquipments,omitempty"`
	WorkoutTypes          []string `json:"workoutTypes,omitempty"`
	Difficulty            string   `json:"difficulty,omitempty"`
	Tips                  string   `json:"tips,omitempty"`
}
