package handler

import (
	"estatehub/backend/internal/account"
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register створює обліковий запис і одразу видає токен
func (h *Handler) Register(c *gin.Context) {
	var req account.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Accounts.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	session, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"user": user, "token": session.Token, "expiresAt": session.ExpiresAt})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": session.User, "token": session.Token, "expiresAt": session.ExpiresAt})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.Accounts.Profile(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

type banRequest struct {
	Hours int `json:"hours"`
}

// BanUser blocks a user; a missing or zero hours blocks permanently.
func (h *Handler) BanUser(c *gin.Context) {
	var req banRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	user, err := h.Accounts.Ban(c.Request.Context(), c.Param("id"), req.Hours)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UnbanUser(c *gin.Context) {
	user, err := h.Accounts.Unban(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}
