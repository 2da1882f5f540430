package handler

import (
	"estatehub/backend/internal/messaging"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type messageRequest struct {
	RecipientID string `json:"recipientId"`
	PropertyID  string `json:"propertyId"`
	Content     string `json:"content"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req messageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Messages.Send(c.Request.Context(), c.GetString(ctxUserID), messaging.SendInput{
		RecipientID: req.RecipientID,
		PropertyID:  req.PropertyID,
		Content:     req.Content,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": m})
}

func (h *Handler) Inbox(c *gin.Context) {
	msgs, err := h.Messages.Inbox(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"messages": msgs})
}

// Conversation is polled by clients; ?since= (RFC 3339) returns only newer messages.
func (h *Handler) Conversation(c *gin.Context) {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "since must be an RFC 3339 timestamp")
			return
		}
		since = t
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := h.Messages.Conversation(c.Request.Context(), c.GetString(ctxUserID), c.Param("userId"), since, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) MarkMessageRead(c *gin.Context) {
	if err := h.Messages.MarkRead(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID)); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "message marked as read"})
}
