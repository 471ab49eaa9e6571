package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roseboard/backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

type updateSettingsRequest struct {
	ThemeMode     *string `json:"themeMode"`
	HeaderTitle   *string `json:"headerTitle"`
	HeaderInitial *string `json:"headerInitial"`
}

type updateNotesRequest struct {
	GlobalNotes string `json:"globalNotes"`
}

type addFocusRequest struct {
	Minutes int `json:"minutes"`
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	profile, apiErr := h.profileService.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req updateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, apiErr := h.profileService.UpdateSettings(c.Request.Context(), userID, service.UpdateSettingsInput{
		ThemeMode:     req.ThemeMode,
		HeaderTitle:   req.HeaderTitle,
		HeaderInitial: req.HeaderInitial,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateNotes(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req updateNotesRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, apiErr := h.profileService.UpdateNotes(c.Request.Context(), userID, req.GlobalNotes)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) AddFocus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req addFocusRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, apiErr := h.profileService.AddFocusMinutes(c.Request.Context(), userID, req.Minutes)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
