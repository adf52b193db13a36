package repository

import (
	"errors"
	"log"
	"sync"

	"fitcoach/models"
)

// ChatRepository holds coach transcripts in memory. They are lost on restart.
type ChatRepository interface {
	SaveMessage(message models.ChatMessage) (models.ChatMessage, error)
	UpdateMessage(message models.ChatMessage) error
	GetMessagesByUserID(userID int64) ([]models.ChatMessage, error)
	ClearMessages(userID int64) error
}

type chatRepository struct {
	messages map[int64][]models.ChatMessage
	mu       sync.RWMutex
}

// NewChatRepository creates an empty in-memory transcript store.
func NewChatRepository() ChatRepository {
	return &chatRepository{
		messages: make(map[int64][]models.ChatMessage),
	}
}

// SaveMessage appends message and assigns it the next sequence id of the user's transcript.
func (r *chatRepository) SaveMessage(message models.ChatMessage) (models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.UserID == 0 {
		return models.ChatMessage{}, errors.New("cannot save message: user id is required")
	}

	userMessages := r.messages[message.UserID]
	message.ID = uint(len(userMessages) + 1)
	r.messages[message.UserID] = append(userMessages, message)

	log.Printf("INFO: [ChatRepository] Saved message: UserID=%d, MsgID=%d, Type=%s, Content='%.30s...'", message.UserID, message.ID, message.Type, message.Content)
	return message, nil
}

// UpdateMessage replaces a stored message in place, e.g. to mark an inline form submitted.
func (r *chatRepository) UpdateMessage(message models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userMessages := r.messages[message.UserID]
	if message.ID == 0 || int(message.ID) > len(userMessages) {
		return errors.New("message not found")
	}
	userMessages[message.ID-1] = message
	return nil
}

// GetMessagesByUserID returns a copy of the user's transcript. An unknown user has an empty one.
func (r *chatRepository) GetMessagesByUserID(userID int64) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userMessages := r.messages[userID]
	result := make([]models.ChatMessage, len(userMessages))
	copy(result, userMessages)
	return result, nil
}

func (r *chatRepository) ClearMessages(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.messages, userID)
	log.Printf("INFO: [ChatRepository] Cleared transcript for UserID=%d", userID)
	return nil
}
