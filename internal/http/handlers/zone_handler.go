package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quickbite/internal/modules/zone"
	"quickbite/internal/types"
)

type ZoneHandler struct {
	zones *zone.Service
}

func NewZoneHandler(svc *zone.Service) *ZoneHandler {
	return &ZoneHandler{zones: svc}
}

// Serviceable handles GET /api/zones/serviceable?lat=&lng=.
func (h *ZoneHandler) Serviceable(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	zoneID, ok, err := h.zones.Serviceable(c.Request.Context(), types.Point{Lat: lat, Lng: lng})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "zone lookup failed")
		return
	}
	resp := gin.H{"serviceable": ok}
	if ok {
		resp["zone_id"] = zoneID
	}
	writeJSON(c, http.StatusOK, resp)
}
