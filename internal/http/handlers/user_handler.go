package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbite/internal/modules/userloc"
	"quickbite/internal/types"
)

type UserHandler struct {
	userloc *userloc.Service
}

func NewUserHandler(svc *userloc.Service) *UserHandler {
	return &UserHandler{userloc: svc}
}

type userLocationRequest struct {
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	Accuracy         *float64 `json:"accuracy"`
	Address          *string  `json:"address"`
	Area             *string  `json:"area"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	FormattedAddress *string  `json:"formatted_address"`
}

// SetLocation handles PUT /api/users/:id/location. Users may only write
// their own record.
func (h *UserHandler) SetLocation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing user id")
		return
	}
	if !requireSelf(c, "", id) {
		return
	}
	var req userLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	ok, err := h.userloc.Set(c.Request.Context(), types.ID(id), userloc.Location{
		Lat:              req.Lat,
		Lng:              req.Lng,
		Accuracy:         req.Accuracy,
		Address:          req.Address,
		Area:             req.Area,
		City:             req.City,
		State:            req.State,
		FormattedAddress: req.FormattedAddress,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "location update failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"synced": ok})
}
