package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quickbite/internal/config"
	"quickbite/internal/modules/dispatch"
	"quickbite/internal/types"
)

type DispatchHandler struct {
	dispatch *dispatch.Service
	cfg      config.DispatchConfig
}

func NewDispatchHandler(svc *dispatch.Service, cfg config.DispatchConfig) *DispatchHandler {
	return &DispatchHandler{dispatch: svc, cfg: cfg}
}

type nearestRequest struct {
	// Pointers so that binding can tell a missing coordinate from 0°.
	PickupLat *float64 `json:"pickup_lat" binding:"required"`
	PickupLng *float64 `json:"pickup_lng" binding:"required"`
	MaxAgeMs  *int64   `json:"max_age_ms"`
}

// Nearest handles POST /api/dispatch/nearest. A response with a null
// candidate means "fall back to manual assignment".
func (h *DispatchHandler) Nearest(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req nearestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	maxAge := h.cfg.MaxAge
	if req.MaxAgeMs != nil {
		maxAge = time.Duration(*req.MaxAgeMs) * time.Millisecond
	}
	candidate, err := h.dispatch.FindNearest(c.Request.Context(),
		types.Point{Lat: *req.PickupLat, Lng: *req.PickupLng}, maxAge)
	if err == dispatch.ErrBadPickup {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "matching failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"candidate": candidate})
}

// Nearby handles GET /api/partners/nearby?lat=&lng=&radius_km=.
func (h *DispatchHandler) Nearby(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius := h.cfg.NearbyRadiusKm
	if v := c.Query("radius_km"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			radius = r
		}
	}
	ids, err := h.dispatch.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "nearby lookup failed")
		return
	}
	if ids == nil {
		ids = []types.ID{}
	}
	writeJSON(c, http.StatusOK, gin.H{"partners": ids})
}
