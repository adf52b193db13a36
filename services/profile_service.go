package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fitcoach/client"
	"fitcoach/models"
)

// ProfileService serves the user's body profile, the equipment catalog and the free fitness chat.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, userID int64, profile models.UserProfile) (*models.UserProfile, error)
	ListEquipment(ctx context.Context) ([]models.GymEquipment, error)
	GetEquipment(ctx context.Context, name string) (*models.GymEquipment, error)
	SearchEquipment(ctx context.Context, keyword string) ([]models.GymEquipment, error)
	EquipmentByMuscle(ctx context.Context, muscle string) ([]models.GymEquipment, error)
	FitnessChat(ctx context.Context, message, conversationID string) (*models.ChatResponse, error)
}

type profileService struct {
	profiles client.ProfileClient
	catalog  client.CatalogClient
	chat     client.ChatClient
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(profiles client.ProfileClient, catalog client.CatalogClient, chat client.ChatClient) ProfileService {
	return &profileService{profiles: profiles, catalog: catalog, chat: chat}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for userID %d: %w", userID, err)
	}
	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, userID int64, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.Age < 0 || profile.HeightCm < 0 || profile.WeightKg < 0 {
		return nil, fmt.Errorf("%w: age, height and weight must not be negative", ErrInvalidInput)
	}
	saved, err := s.profiles.SaveProfile(ctx, userID, profile)
	if err != nil {
		log.Printf("ERROR: [ProfileService] Failed to save profile for userID %d: %v", userID, err)
		return nil, fmt.Errorf("failed to save profile for userID %d: %w", userID, err)
	}
	log.Printf("INFO: [ProfileService] Saved profile for userID %d (BMI band '%s').", userID, saved.BMIBand())
	return saved, nil
}

func (s *profileService) ListEquipment(ctx context.Context) ([]models.GymEquipment, error) {
	equipment, err := s.catalog.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

func (s *profileService) GetEquipment(ctx context.Context, name string) (*models.GymEquipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: equipment name is required", ErrInvalidInput)
	}
	equipment, err := s.catalog.GetEquipment(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment '%s': %w", name, err)
	}
	return equipment, nil
}

func (s *profileService) SearchEquipment(ctx context.Context, keyword string) ([]models.GymEquipment, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListEquipment(ctx)
	}
	equipment, err := s.catalog.SearchEquipment(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search equipment for '%s': %w", keyword, err)
	}
	return equipment, nil
}

func (s *profileService) EquipmentByMuscle(ctx context.Context, muscle string) ([]models.GymEquipment, error) {
	equipment, err := s.catalog.EquipmentByMuscle(ctx, NormalizeMuscleGroup(muscle))
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment for muscle '%s': %w", muscle, err)
	}
	return equipment, nil
}

func (s *profileService) FitnessChat(ctx context.Context, message, conversationID string) (*models.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	resp, err := s.chat.FitnessChat(ctx, models.ChatRequest{Message: message, ConversationID: conversationID})
	if err != nil {
		return nil, fmt.Errorf("fitness chat failed: %w", err)
	}
	return resp, nil
}
