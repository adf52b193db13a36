package api

import (
	"log"
	"net/http"

	"fitcoach/models"
	"fitcoach/services"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest is the body of POST /api/coach/messages.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendMessageResponse carries the coach reply and the window it was interpreted against.
type SendMessageResponse struct {
	Reply  *models.ChatMessage `json:"reply"`
	Window models.WeekWindow   `json:"window"`
}

// ObjectivesRequest is the body of POST /api/coach/objectives.
type ObjectivesRequest struct {
	Goals []string `json:"goals"`
}

// SendMessageHandler runs one user message through the intent dispatcher.
func (h *APIHandler) SendMessageHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	log.Printf("INFO: [SendMessageHandler] Received coach message from userID %d.", userID)
	reply, err := h.intentService.SendMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondError(c, "Failed to process message.", err)
		return
	}
	utils.SendJSONOK(c, "success", SendMessageResponse{Reply: reply, Window: h.sessions.Window(userID)})
}

func (h *APIHandler) TranscriptHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	transcript, err := h.intentService.Transcript(userID)
	if err != nil {
		respondError(c, "Failed to load the conversation.", err)
		return
	}
	utils.SendJSONOK(c, "success", gin.H{
		"transcript": transcript,
		"thinking":   h.sessions.IsThinking(userID),
	})
}

// ResetTranscriptHandler clears the conversation and the session, leaving only the welcome message.
func (h *APIHandler) ResetTranscriptHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	if err := h.intentService.Reset(userID); err != nil {
		respondError(c, "Failed to reset the conversation.", err)
		return
	}
	transcript, err := h.intentService.Transcript(userID)
	if err != nil {
		respondError(c, "Failed to load the conversation.", err)
		return
	}
	utils.SendJSONOK(c, "Conversation reset.", gin.H{"transcript": transcript})
}

func (h *APIHandler) IntensityPromptHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	msg, err := h.assessmentService.OpenIntensityPrompt(userID)
	if err != nil {
		respondError(c, "Failed to open the intensity form.", err)
		return
	}
	utils.SendJSONOK(c, "success", msg)
}

// SubmitIntensityHandler records the intensity form and appends the recommendation to the transcript.
func (h *APIHandler) SubmitIntensityHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var input models.IntensityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	result, err := h.assessmentService.SubmitIntensity(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, "Failed to submit the intensity form.", err)
		return
	}
	utils.SendJSONOK(c, "success", result)
}

func (h *APIHandler) ObjectivesPromptHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	msg, err := h.assessmentService.OpenObjectivesPrompt(userID)
	if err != nil {
		respondError(c, "Failed to open the objectives form.", err)
		return
	}
	utils.SendJSONOK(c, "success", msg)
}

func (h *APIHandler) SubmitObjectivesHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req ObjectivesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	messages, err := h.assessmentService.SubmitObjectives(userID, req.Goals)
	if err != nil {
		respondError(c, "Failed to submit objectives.", err)
		return
	}
	utils.SendJSONOK(c, "success", messages)
}

// RecommendHandler evaluates the intensity table without touching any session.
func (h *APIHandler) RecommendHandler(c *gin.Context) {
	var input models.IntensityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	tier := services.RecommendIntensity(input)
	utils.SendJSONOK(c, "success", gin.H{
		"tier":    tier,
		"summary": services.IntensitySummary(input),
	})
}
