package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roseboard/backend/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// GetEODMessage answers with today's affirmation and the date key it was
// generated for.
func (h *MessageHandler) GetEODMessage(c *gin.Context) {
	c.JSON(http.StatusOK, h.messageService.Today())
}
