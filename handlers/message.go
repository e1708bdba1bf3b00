package handlers

import (
	"net/http"
	"time"

	"hoardify/models"
	"hoardify/services/message"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves the contact-message inbox.
type MessageHandler struct {
	Messages message.MessageService
}

func NewMessageHandler(ms message.MessageService) *MessageHandler {
	return &MessageHandler{Messages: ms}
}

func (h *MessageHandler) ListMessagesHandler(c *gin.Context) {
	list, err := h.Messages.ListMessages(c.Request.Context(), c.Query("search"), c.Query("unread") == "true")
	if err != nil {
		respondError(c, "Failed to fetch messages", err)
		return
	}
	respondPage(c, list)
}

func (h *MessageHandler) GetMessageHandler(c *gin.Context) {
	m, err := h.Messages.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch message", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// MarkReadHandler handles PUT /api/admin/messages/:id/read.
func (h *MessageHandler) MarkReadHandler(c *gin.Context) {
	var req models.MarkReadRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Messages.MarkRead(c.Request.Context(), c.Param("id"), req.Read); err != nil {
		respondError(c, "Failed to update message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "read": req.Read})
}

func (h *MessageHandler) DeleteMessageHandler(c *gin.Context) {
	if err := h.Messages.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

func (h *MessageHandler) UnreadCountHandler(c *gin.Context) {
	n, err := h.Messages.UnreadCount(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to count messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// StreamMessagesHandler handles GET /api/admin/messages/stream as Server-Sent Events.
func (h *MessageHandler) StreamMessagesHandler(c *gin.Context) {
	sub := h.Messages.Subscribe()
	defer sub.Unsubscribe()

	streamHeaders(c)
	ping := time.NewTicker(streamKeepAlive)
	defer ping.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case list, ok := <-sub.C:
			if !ok {
				return
			}
			c.SSEvent("messages", list)
		case <-ping.C:
			c.SSEvent("ping", time.Now().Unix())
		}
		c.Writer.Flush()
	}
}
