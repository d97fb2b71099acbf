package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbite/internal/modules/notify"
	"quickbite/internal/modules/presence"
	"quickbite/internal/types"
)

type PresenceHandler struct {
	presence *presence.Service
	notify   *notify.Service
}

func NewPresenceHandler(svc *presence.Service, notifySvc *notify.Service) *PresenceHandler {
	return &PresenceHandler{presence: svc, notify: notifySvc}
}

type heartbeatRequest struct {
	Online bool     `json:"online"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

// Heartbeat handles POST /api/partners/:id/presence.
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing partner id")
		return
	}
	if !requireSelf(c, RolePartner, id) {
		return
	}
	var req heartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	ok, err := h.presence.SetPresence(c.Request.Context(), types.ID(id), presence.Update{
		Online: req.Online,
		Lat:    req.Lat,
		Lng:    req.Lng,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "presence sync failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"synced": ok})
}

type registerTokenRequest struct {
	Token string `json:"token"`
}

// RegisterToken handles POST /api/partners/:id/push-token.
func (h *PresenceHandler) RegisterToken(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing partner id")
		return
	}
	if !requireSelf(c, RolePartner, id) {
		return
	}
	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		writeError(c, http.StatusBadRequest, "missing token")
		return
	}
	ok, err := h.notify.RegisterToken(c.Request.Context(), types.ID(id), req.Token)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "token registration failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"registered": ok})
}
