package api

import (
	"net/http"

	"fitcoach/models"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

// FitnessChatRequest is the body of POST /api/fitness/chat.
type FitnessChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

func (h *APIHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load profile.", err)
		return
	}
	utils.SendJSONOK(c, "success", gin.H{"profile": profile, "bmi": profile.BMI(), "bmiBand": profile.BMIBand()})
}

func (h *APIHandler) SaveProfileHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	saved, err := h.profileService.SaveProfile(c.Request.Context(), userID, profile)
	if err != nil {
		respondError(c, "Failed to save profile.", err)
		return
	}
	utils.SendJSONOK(c, "Profile saved.", saved)
}

func (h *APIHandler) ListEquipmentHandler(c *gin.Context) {
	equipment, err := h.profileService.ListEquipment(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load equipment.", err)
		return
	}
	utils.SendJSONOK(c, "success", equipment)
}

func (h *APIHandler) GetEquipmentHandler(c *gin.Context) {
	equipment, err := h.profileService.GetEquipment(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, "Failed to load equipment.", err)
		return
	}
	utils.SendJSONOK(c, "success", equipment)
}

// SearchEquipmentHandler matches ?keyword; an empty keyword lists everything.
func (h *APIHandler) SearchEquipmentHandler(c *gin.Context) {
	equipment, err := h.profileService.SearchEquipment(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		respondError(c, "Failed to search equipment.", err)
		return
	}
	utils.SendJSONOK(c, "success", equipment)
}

func (h *APIHandler) EquipmentByMuscleHandler(c *gin.Context) {
	equipment, err := h.profileService.EquipmentByMuscle(c.Request.Context(), c.Param("muscle"))
	if err != nil {
		respondError(c, "Failed to load equipment.", err)
		return
	}
	utils.SendJSONOK(c, "success", equipment)
}

// FitnessChatHandler is a free-form chat with the fitness agent, outside the coach transcript.
func (h *APIHandler) FitnessChatHandler(c *gin.Context) {
	var req FitnessChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	resp, err := h.profileService.FitnessChat(c.Request.Context(), req.Message, req.ConversationID)
	if err != nil {
		respondError(c, "The fitness assistant is temporarily unavailable.", err)
		return
	}
	conversationID := req.ConversationID
	if resp != nil && resp.ConversationID != "" {
		conversationID = resp.ConversationID
	}
	utils.SendJSONOK(c, "success", gin.H{"reply": resp.Text(), "conversationId": conversationID})
}
