package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feedback-portal-backend/model"
	"feedback-portal-backend/service"
	"feedback-portal-backend/store"
	"feedback-portal-backend/util"
)

// AdminHandler serves the authenticated dashboard endpoints.
type AdminHandler struct {
	feedbackService  *service.FeedbackService
	analyticsService *service.AnalyticsService
}

func NewAdminHandler(feedbackService *service.FeedbackService, analyticsService *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		feedbackService:  feedbackService,
		analyticsService: analyticsService,
	}
}

// Analytics handles GET /api/admin/analytics.
func (h *AdminHandler) Analytics(c *gin.Context) {
	snap, err := h.analyticsService.Compute(c.Request.Context())
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// List handles GET /api/admin/feedback with 1-indexed pagination and the
// status/category/search filters.
func (h *AdminHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	lim, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	f := store.Filter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	result, err := h.feedbackService.List(c.Request.Context(), f, page, lim)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}
	if result.Feedback == nil {
		result.Feedback = []model.Feedback{}
	}
	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/admin/feedback/:id.
func (h *AdminHandler) GetByID(c *gin.Context) {
	rec, err := h.feedbackService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Update handles PATCH /api/admin/feedback/:id and returns the updated
// record.
func (h *AdminHandler) Update(c *gin.Context) {
	var req model.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.ErrorResponse{Error: "Invalid request data"})
		return
	}

	rec, err := h.feedbackService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE /api/admin/feedback/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.feedbackService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		util.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
