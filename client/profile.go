package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fitcoach/models"
)

const equipmentPath = "/api/fitness/equipment"

// CatalogClient covers the static equipment catalog.
type CatalogClient interface {
	ListEquipment(ctx context.Context) ([]models.GymEquipment, error)
	GetEquipment(ctx context.Context, name string) (*models.GymEquipment, error)
	SearchEquipment(ctx context.Context, keyword string) ([]models.GymEquipment, error)
	EquipmentByMuscle(ctx context.Context, muscle string) ([]models.GymEquipment, error)
}

// ProfileClient covers /api/user-profiles.
type ProfileClient interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, userID int64, profile models.UserProfile) (*models.UserProfile, error)
}

func (c *Client) ListEquipment(ctx context.Context) ([]models.GymEquipment, error) {
	var items []models.GymEquipment
	if err := c.do(ctx, http.MethodGet, equipmentPath, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetEquipment(ctx context.Context, name string) (*models.GymEquipment, error) {
	var item models.GymEquipment
	if err := c.do(ctx, http.MethodGet, equipmentPath+"/"+url.PathEscape(name), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) SearchEquipment(ctx context.Context, keyword string) ([]models.GymEquipment, error) {
	var items []models.GymEquipment
	if err := c.do(ctx, http.MethodGet, equipmentPath+"/search", url.Values{"keyword": {keyword}}, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) EquipmentByMuscle(ctx context.Context, muscle string) ([]models.GymEquipment, error) {
	var items []models.GymEquipment
	if err := c.do(ctx, http.MethodGet, equipmentPath+"/muscle/"+url.PathEscape(muscle), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/user-profiles/by-user/"+strconv.FormatInt(userID, 10), nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) SaveProfile(ctx context.Context, userID int64, profile models.UserProfile) (*models.UserProfile, error) {
	var saved models.UserProfile
	if err := c.do(ctx, http.MethodPost, "/api/user-profiles/by-user/"+strconv.FormatInt(userID, 10), nil, profile, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
