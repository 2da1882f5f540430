package handler

import (
	"estatehub/backend/internal/listing"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type propertyStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func parsePrice(raw string) (float64, bool) {
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil && v >= 0
}

// ListProperties is the public catalogue: Active listings only.
func (h *Handler) ListProperties(c *gin.Context) {
	minPrice, ok1 := parsePrice(c.Query("minPrice"))
	maxPrice, ok2 := parsePrice(c.Query("maxPrice"))
	if !ok1 || !ok2 {
		fail(c, http.StatusBadRequest, "price filters must be non-negative numbers")
		return
	}
	page := pageOf(c)
	res, err := h.Listings.ListActive(c.Request.Context(), listing.Search{
		Location: c.Query("location"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "properties", page, res)
}

func (h *Handler) GetProperty(c *gin.Context) {
	p, err := h.Listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req listing.Details
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Listings.Create(c.Request.Context(), c.GetString(ctxUserID), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"property": p})
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	var req listing.Details
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Listings.Update(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) MyProperties(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Listings.ListByOwner(c.Request.Context(), c.GetString(ctxUserID), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "properties", page, res)
}

func (h *Handler) AdminListProperties(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Listings.ListByStatus(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "properties", page, res)
}

func (h *Handler) AdminUpdatePropertyStatus(c *gin.Context) {
	var req propertyStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Listings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) AdminDeleteProperty(c *gin.Context) {
	if err := h.Listings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "property deleted"})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Reviews.Create(c.Request.Context(), c.GetString(ctxUserID), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"review": r})
}

func (h *Handler) ListReviews(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Reviews.ListForProperty(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"reviews":    res.Items,
		"rating":     res.Rating,
		"pagination": page.Meta(res.Total),
	})
}
