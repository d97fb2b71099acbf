package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbite/internal/modules/notify"
	"quickbite/internal/modules/ordersync"
	"quickbite/internal/modules/routes"
	"quickbite/internal/types"
)

type OrderHandler struct {
	sync   *ordersync.Service
	routes *routes.Service
	notify *notify.Service
}

// NewOrderHandler wires the order sync endpoints. routes and notify are
// optional; without them assignment sync still works, it just skips route
// computation and the push.
func NewOrderHandler(syncSvc *ordersync.Service, routeSvc *routes.Service, notifySvc *notify.Service) *OrderHandler {
	return &OrderHandler{sync: syncSvc, routes: routeSvc, notify: notifySvc}
}

type assignmentRequest struct {
	PartnerID     *string  `json:"partner_id"`
	Polyline      *string  `json:"polyline"`
	RestaurantLat *float64 `json:"restaurant_lat"`
	RestaurantLng *float64 `json:"restaurant_lng"`
	CustomerLat   *float64 `json:"customer_lat"`
	CustomerLng   *float64 `json:"customer_lng"`
	DistanceKm    *float64 `json:"distance"`
	DurationSec   *float64 `json:"duration"`
}

// Assign handles POST /api/orders/:id/assignment.
func (h *OrderHandler) Assign(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	if !requireAdmin(c) {
		return
	}
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}

	a := ordersync.Assignment{
		Polyline:      req.Polyline,
		RestaurantLat: req.RestaurantLat,
		RestaurantLng: req.RestaurantLng,
		CustomerLat:   req.CustomerLat,
		CustomerLng:   req.CustomerLng,
		DistanceKm:    req.DistanceKm,
		DurationSec:   req.DurationSec,
	}
	if req.PartnerID != nil {
		pid := types.ID(*req.PartnerID)
		a.PartnerID = &pid
	}

	// When the event carries endpoints but no geometry, compute the route
	// (cache-first) so the partner app gets a polyline immediately.
	if h.routes != nil && a.Polyline == nil &&
		a.RestaurantLat != nil && a.RestaurantLng != nil &&
		a.CustomerLat != nil && a.CustomerLng != nil {
		entry, err := h.routes.Route(c.Request.Context(),
			types.Point{Lat: *a.RestaurantLat, Lng: *a.RestaurantLng},
			types.Point{Lat: *a.CustomerLat, Lng: *a.CustomerLng})
		if err != nil {
			log.Printf("orders: route computation for %s: %v", id, err)
		} else {
			a.Polyline = &entry.Polyline
			if a.DistanceKm == nil {
				a.DistanceKm = entry.DistanceKm
			}
			if a.DurationSec == nil {
				a.DurationSec = entry.DurationSec
			}
		}
	}

	ok, err := h.sync.SyncAssignment(c.Request.Context(), types.ID(id), a)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "assignment sync failed")
		return
	}

	if ok && h.notify != nil && a.PartnerID != nil &&
		a.RestaurantLat != nil && a.RestaurantLng != nil {
		offer := notify.AssignmentOffer{
			OrderID: types.ID(id),
			Pickup:  types.Point{Lat: *a.RestaurantLat, Lng: *a.RestaurantLng},
		}
		if a.DistanceKm != nil {
			offer.DistanceKm = *a.DistanceKm
		}
		if err := h.notify.NotifyAssignment(c.Request.Context(), *a.PartnerID, offer); err != nil {
			log.Printf("orders: assignment push for %s: %v", id, err)
		}
	}

	writeJSON(c, http.StatusOK, gin.H{"synced": ok})
}

type liveLocationRequest struct {
	PartnerID *string  `json:"partner_id"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Status    string   `json:"status"`
}

// LiveLocation handles POST /api/orders/:id/location.
func (h *OrderHandler) LiveLocation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	var req liveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	// The reporting partner may only write their own position.
	partnerID := ""
	if req.PartnerID != nil {
		partnerID = *req.PartnerID
	}
	if !requireSelf(c, RolePartner, partnerID) {
		return
	}

	u := ordersync.LiveUpdate{Lat: req.Lat, Lng: req.Lng, Status: req.Status}
	if req.PartnerID != nil {
		pid := types.ID(*req.PartnerID)
		u.PartnerID = &pid
	}
	ok, err := h.sync.SyncLiveLocation(c.Request.Context(), types.ID(id), u)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "location sync failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"synced": ok})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	if !requireAdmin(c) {
		return
	}
	rec, err := h.sync.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "order lookup failed")
		return
	}
	if rec == nil {
		writeError(c, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

// Remove handles DELETE /api/orders/:id.
func (h *OrderHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	if !requireAdmin(c) {
		return
	}
	ok, err := h.sync.Remove(c.Request.Context(), types.ID(id))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "order removal failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"removed": ok})
}
