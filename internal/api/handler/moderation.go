package handler

import (
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"net/http"

	"github.com/gin-gonic/gin"
)

type complaintRequest struct {
	TargetID    string   `json:"targetId"`
	TargetType  string   `json:"targetType"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

type propertyComplaintRequest struct {
	PropertyID  string   `json:"propertyId"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

type complaintStatusRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
	AdminNotes string `json:"adminNotes"`
}

type appealRequest struct {
	ComplaintID    string   `json:"complaintId"`
	PropertyID     string   `json:"propertyId"`
	Message        string   `json:"message"`
	EvidencePhotos []string `json:"evidencePhotos"`
}

type resolveRequest struct {
	Decision      string `json:"decision"`
	AdminResponse string `json:"adminResponse"`
}

func (h *Handler) CreateComplaint(c *gin.Context) {
	var req complaintRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Complaints.Create(c.Request.Context(), complaint.CreateInput{
		ComplainantID: c.GetString(ctxUserID),
		TargetID:      req.TargetID,
		TargetType:    req.TargetType,
		Type:          req.Type,
		Description:   req.Description,
		Evidence:      req.Evidence,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"complaint": created})
}

func (h *Handler) CreatePropertyComplaint(c *gin.Context) {
	var req propertyComplaintRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Complaints.CreatePropertyComplaint(c.Request.Context(),
		c.GetString(ctxUserID), req.PropertyID, req.Type, req.Description, req.Evidence)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"complaint": created})
}

func (h *Handler) MyComplaints(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Complaints.ListMine(c.Request.Context(), c.GetString(ctxUserID), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "complaints", page, res)
}

func (h *Handler) AdminListComplaints(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Complaints.GetAll(c.Request.Context(), page, c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "complaints", page, res)
}

func (h *Handler) AdminGetComplaint(c *gin.Context) {
	view, err := h.Complaints.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"complaint": view})
}

func (h *Handler) AdminUpdateComplaintStatus(c *gin.Context) {
	var req complaintStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Complaints.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Resolution, req.AdminNotes)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"complaint": updated})
}

func (h *Handler) CreateAppeal(c *gin.Context) {
	var req appealRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Appeals.CreateAppeal(c.Request.Context(), appeal.CreateInput{
		ComplaintID:    req.ComplaintID,
		PropertyID:     req.PropertyID,
		CallerID:       c.GetString(ctxUserID),
		Message:        req.Message,
		EvidencePhotos: req.EvidencePhotos,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"appeal": created})
}

// ListAppeals shows admins every appeal; other callers see the appeals
// they own or whose complaint they filed.
func (h *Handler) ListAppeals(c *gin.Context) {
	page := pageOf(c)
	var (
		res pagination.Result[models.AppealView]
		err error
	)
	if isAdmin(c) {
		res, err = h.Appeals.GetAllAppeals(c.Request.Context(), page, c.Query("status"))
	} else {
		res, err = h.Appeals.ListForUser(c.Request.Context(), c.GetString(ctxUserID), page)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "appeals", page, res)
}

func (h *Handler) MyAppeals(c *gin.Context) {
	page := pageOf(c)
	res, err := h.Appeals.ListMyAppeals(c.Request.Context(), c.GetString(ctxUserID), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, "appeals", page, res)
}

func (h *Handler) GetAppeal(c *gin.Context) {
	view, err := h.Appeals.GetAppeal(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), isAdmin(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"appeal": view})
}

func (h *Handler) ResolveAppeal(c *gin.Context) {
	var req resolveRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Appeals.ResolveAppeal(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), req.Decision, req.AdminResponse)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"appeal":         res.Appeal,
		"decision":       res.Decision,
		"propertyAction": res.PropertyAction,
	})
}
