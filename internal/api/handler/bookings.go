package handler

import (
	"estatehub/backend/internal/booking"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type bookingRequest struct {
	PropertyID string `json:"propertyId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Note       string `json:"note"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, err == nil
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !bindJSON(c, &req) {
		return
	}
	start, ok1 := parseDate(req.StartDate)
	end, ok2 := parseDate(req.EndDate)
	if !ok1 || !ok2 {
		fail(c, http.StatusBadRequest, "startDate and endDate must be dates (YYYY-MM-DD)")
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), c.GetString(ctxUserID), booking.CreateInput{
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
		Note:       req.Note,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Bookings.ListMine(c.Request.Context(), c.GetString(ctxUserID), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "bookings", page, res)
}

func (h *Handler) OwnerBookings(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Bookings.ListForOwner(c.Request.Context(), c.GetString(ctxUserID), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "bookings", page, res)
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"booking": b})
}
