package client

import (
	"context"
	"net/http"
	"net/url"

	"fitcoach/models"
)

// Agent types served by /api/chat/{agentType}.
const (
	AgentGeneral    = "general"
	AgentAnalytical = "analytical"
)

// ChatClient covers the free-text LLM endpoints.
type ChatClient interface {
	Chat(ctx context.Context, agentType string, userID int64, req models.ChatRequest) (*models.ChatResponse, error)
	FitnessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// Chat posts to /api/chat/{agentType}. userID is sent when non-zero.
func (c *Client) Chat(ctx context.Context, agentType string, userID int64, req models.ChatRequest) (*models.ChatResponse, error) {
	if agentType == "" {
		agentType = AgentGeneral
	}
	var q url.Values
	if userID != 0 {
		q = userQuery(userID)
	}
	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/"+url.PathEscape(agentType), q, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FitnessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/fitness/chat", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
