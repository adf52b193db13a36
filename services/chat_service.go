package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"fitcoach/client"
	"fitcoach/config"
	"fitcoach/models"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// IntentClassifier sends a prompt to a language model and returns its raw reply.
type IntentClassifier interface {
	Classify(ctx context.Context, userID int64, prompt string) (string, error)
}

type backendClassifier struct {
	chat          client.ChatClient
	agentType     string
	conversations sync.Map // userID -> conversation id
}

// NewBackendClassifier classifies through the backend's /api/chat/{agentType} endpoint.
func NewBackendClassifier(chat client.ChatClient, agentType string) IntentClassifier {
	if agentType == "" {
		agentType = client.AgentGeneral
	}
	return &backendClassifier{chat: chat, agentType: agentType}
}

func (c *backendClassifier) Classify(ctx context.Context, userID int64, prompt string) (string, error) {
	conversationID, _ := c.conversations.LoadOrStore(userID, uuid.NewString())
	resp, err := c.chat.Chat(ctx, c.agentType, userID, models.ChatRequest{
		Message:        prompt,
		ConversationID: conversationID.(string),
	})
	if err != nil {
		return "", fmt.Errorf("chat agent '%s' failed: %w", c.agentType, err)
	}
	if resp.ConversationID != "" {
		c.conversations.Store(userID, resp.ConversationID)
	}
	return resp.Text(), nil
}

// chatCompleter is the part of *openai.Client the LLM classifier uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type llmClassifier struct {
	client       chatCompleter
	model        string
	systemPrompt string
	temperature  float32
}

// NewLLMClassifier classifies by calling an OpenAI-compatible provider directly.
func NewLLMClassifier(cfg config.Config) (IntentClassifier, error) {
	model := cfg.Classifier.Model
	if model == "" {
		return nil, errors.New("classifier model is not configured")
	}
	providerKey, provider, ok := cfg.ProviderForModel(model)
	if !ok {
		return nil, fmt.Errorf("provider configuration for model '%s' not found in llm_models/llm_providers", model)
	}
	if provider.APIKey == "" || provider.BaseURL == "" {
		return nil, fmt.Errorf("API key or BaseURL for classifier provider '%s' is not configured", providerKey)
	}

	openaiConfig := openai.DefaultConfig(provider.APIKey)
	openaiConfig.BaseURL = provider.BaseURL
	log.Printf("INFO: [ChatService] Using LLM classifier with model '%s' via provider '%s'.", model, providerKey)
	return newLLMClassifier(openai.NewClientWithConfig(openaiConfig), model, cfg.LLMSystemPrompt, cfg.Classifier.Temperature), nil
}

func newLLMClassifier(completer chatCompleter, model, systemPrompt string, temperature float32) *llmClassifier {
	return &llmClassifier{client: completer, model: model, systemPrompt: systemPrompt, temperature: temperature}
}

func (c *llmClassifier) Classify(ctx context.Context, userID int64, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if strings.TrimSpace(c.systemPrompt) != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		log.Printf("ERROR: [ChatService] LLM call failed for model %s (userID %d): %v", c.model, userID, err)
		return "", fmt.Errorf("LLM call failed for model %s: %w", c.model, err)
	}
	if len(completion.Choices) == 0 {
		log.Printf("WARN: [ChatService] LLM for model %s returned no choices.", c.model)
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

// NewClassifier picks the classifier named by cfg.Classifier.Mode.
func NewClassifier(cfg config.Config, chat client.ChatClient) (IntentClassifier, error) {
	switch cfg.Classifier.Mode {
	case "", "backend":
		return NewBackendClassifier(chat, cfg.Backend.AgentType), nil
	case "llm":
		return NewLLMClassifier(cfg)
	default:
		return nil, fmt.Errorf("unknown classifier mode '%s'", cfg.Classifier.Mode)
	}
}
