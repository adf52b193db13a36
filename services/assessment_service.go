package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fitcoach/client"
	"fitcoach/models"
	"fitcoach/repository"
)

// RecommendIntensity maps the quick-intensity form onto a tier. It is pure and total.
// Precedence: pain, then low sleep or soreness, then recency refined by background
// and, for the most recent branch only, BMI band.
func RecommendIntensity(in models.IntensityInput) models.IntensityTier {
	if in.Flags.Pain {
		return models.TierRecovery
	}
	if in.Flags.LowSleep || in.Flags.Sore {
		return models.TierBase
	}

	trained := in.Background == models.BackgroundConsistent || in.Background == models.BackgroundExperienced

	switch in.Recency {
	case models.RecencyOverThreeMon:
		if trained {
			return models.TierBase
		}
		return models.TierRecovery
	case models.RecencyOneToThreeMon:
		return models.TierBase
	case models.RecencyOneToFourWeeks:
		if trained {
			return models.TierBuild
		}
		return models.TierBase
	}

	// within1w or not answered
	tier := models.TierBase
	switch in.Background {
	case models.BackgroundConsistent:
		tier = models.TierBuild
	case models.BackgroundExperienced:
		tier = models.TierPeak
	}
	if in.BMIBand == models.BMIHigh && !trained {
		tier = models.TierRecovery
	}
	return tier
}

// AssessmentService drives the intensity and objectives forms embedded in the coach chat.
type AssessmentService interface {
	OpenIntensityPrompt(userID int64) (*models.ChatMessage, error)
	SubmitIntensity(ctx context.Context, userID int64, input models.IntensityInput) (*models.IntensityResult, error)
	OpenObjectivesPrompt(userID int64) (*models.ChatMessage, error)
	SubmitObjectives(userID int64, goals []string) ([]models.ChatMessage, error)
}

type assessmentService struct {
	chatRepo repository.ChatRepository
	profiles client.ProfileClient
	now      func() time.Time
}

// NewAssessmentService creates a new instance of AssessmentService. profiles may be nil.
func NewAssessmentService(chatRepo repository.ChatRepository, profiles client.ProfileClient) AssessmentService {
	return &assessmentService{chatRepo: chatRepo, profiles: profiles, now: time.Now}
}

// NewIntensityForm returns the blank intensity form.
func NewIntensityForm() models.IntensityForm {
	return models.IntensityForm{
		Backgrounds: models.Backgrounds,
		Recencies:   models.Recencies,
		BMIBands:    models.BMIBands,
	}
}

// NewObjectivesForm returns the blank objectives form.
func NewObjectivesForm() models.ObjectivesForm {
	return models.ObjectivesForm{Options: models.Objectives, Selected: []string{}}
}

func (s *assessmentService) save(userID int64, msg models.ChatMessage) (*models.ChatMessage, error) {
	msg.UserID = userID
	msg.Timestamp = s.now()
	saved, err := s.chatRepo.SaveMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to save message for userID %d: %w", userID, err)
	}
	return &saved, nil
}

func (s *assessmentService) OpenIntensityPrompt(userID int64) (*models.ChatMessage, error) {
	return s.save(userID, models.ChatMessage{
		Type:    models.MessageTypeAI,
		Kind:    models.KindIntensityPrompt,
		Content: "Let's set your training intensity. Tell me about your background, your last structured session and how you feel today.",
		Form:    NewIntensityForm(),
	})
}

func (s *assessmentService) SubmitIntensity(ctx context.Context, userID int64, input models.IntensityInput) (*models.IntensityResult, error) {
	if input.BMIBand == "" && s.profiles != nil {
		profile, err := s.profiles.GetProfile(ctx, userID)
		if err != nil {
			log.Printf("WARN: [AssessmentService] Could not load profile for userID %d, BMI band left empty: %v", userID, err)
		} else if band := profile.BMIBand(); band != "" {
			input.BMIBand = band
			log.Printf("INFO: [AssessmentService] Derived BMI band '%s' for userID %d from profile.", band, userID)
		}
	}

	tier := RecommendIntensity(input)
	s.markSubmitted(userID, models.KindIntensityPrompt, func(msg *models.ChatMessage) {
		form := NewIntensityForm()
		form.Selection = input
		form.Submitted = true
		msg.Form = form
	})

	summary, err := s.save(userID, models.ChatMessage{Type: models.MessageTypeUser, Content: IntensitySummary(input)})
	if err != nil {
		return nil, err
	}
	reply, err := s.save(userID, models.ChatMessage{
		Type:    models.MessageTypeAI,
		Content: fmt.Sprintf("Got it. Your recommended intensity is: %s. I'll generate your plan accordingly.", tier),
	})
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: [AssessmentService] Recommended '%s' for userID %d.", tier, userID)
	return &models.IntensityResult{Tier: tier, Summary: *summary, Reply: *reply}, nil
}

// IntensitySummary renders the user's selections as a chat line.
func IntensitySummary(in models.IntensityInput) string {
	var flags []string
	if in.Flags.LowSleep {
		flags = append(flags, "lowSleep")
	}
	if in.Flags.Sore {
		flags = append(flags, "sore")
	}
	if in.Flags.Pain {
		flags = append(flags, "pain")
	}
	flagText := "none"
	if len(flags) > 0 {
		flagText = strings.Join(flags, ", ")
	}
	return fmt.Sprintf("Training Intensity selections → Background: %s, Last training: %s, BMI band: %s, Flags: %s",
		orDash(string(in.Background)), orDash(string(in.Recency)), orDash(string(in.BMIBand)), flagText)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (s *assessmentService) OpenObjectivesPrompt(userID int64) (*models.ChatMessage, error) {
	return s.save(userID, models.ChatMessage{
		Type:    models.MessageTypeAI,
		Kind:    models.KindObjectivesPrompt,
		Content: "What are your training objectives? Pick one or more.",
		Form:    NewObjectivesForm(),
	})
}

func (s *assessmentService) SubmitObjectives(userID int64, goals []string) ([]models.ChatMessage, error) {
	selected := make([]string, 0, len(goals))
	for _, goal := range goals {
		if !knownObjective(goal) {
			return nil, fmt.Errorf("%w: unknown objective %q", ErrInvalidInput, goal)
		}
		selected = append(selected, goal)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: select at least one objective", ErrInvalidInput)
	}

	s.markSubmitted(userID, models.KindObjectivesPrompt, func(msg *models.ChatMessage) {
		form := NewObjectivesForm()
		form.Selected = selected
		form.Submitted = true
		msg.Form = form
	})

	summary, err := s.save(userID, models.ChatMessage{
		Type:    models.MessageTypeUser,
		Content: "Selected goals: " + strings.Join(selected, ", "),
	})
	if err != nil {
		return nil, err
	}
	reply, err := s.save(userID, models.ChatMessage{
		Type:    models.MessageTypeAI,
		Content: "Understood. I will craft your plan around these goals.",
	})
	if err != nil {
		return nil, err
	}
	return []models.ChatMessage{*summary, *reply}, nil
}

func knownObjective(goal string) bool {
	for _, objective := range models.Objectives {
		if objective == goal {
			return true
		}
	}
	return false
}

// markSubmitted updates the latest open form message of kind.
func (s *assessmentService) markSubmitted(userID int64, kind models.MessageKind, apply func(*models.ChatMessage)) {
	messages, err := s.chatRepo.GetMessagesByUserID(userID)
	if err != nil {
		log.Printf("WARN: [AssessmentService] Could not load transcript for userID %d: %v", userID, err)
		return
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Kind == kind {
			msg := messages[i]
			apply(&msg)
			if err := s.chatRepo.UpdateMessage(msg); err != nil {
				log.Printf("WARN: [AssessmentService] Could not update form message %d for userID %d: %v", msg.ID, userID, err)
			}
			return
		}
	}
}
