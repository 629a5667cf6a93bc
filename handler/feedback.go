package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feedback-portal-backend/limit"
	"feedback-portal-backend/model"
	"feedback-portal-backend/service"
	"feedback-portal-backend/util"
)

// FeedbackHandler serves the public feedback endpoints.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(c *gin.Context) {
	if !limit.CheckSubmitLimit(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, util.ErrorResponse{Error: "Too many submissions, try again later"})
		return
	}

	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.ErrorResponse{Error: "Invalid request data"})
		return
	}

	id, err := h.feedbackService.Submit(c.Request.Context(), req)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Feedback submitted successfully",
	})
}

// List handles GET /api/feedback. The public route returns a bare array
// with no pagination envelope.
func (h *FeedbackHandler) List(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	lim, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.feedbackService.PublicList(c.Request.Context(), status, category, lim, offset)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}
	if records == nil {
		records = []model.Feedback{}
	}
	c.JSON(http.StatusOK, records)
}

// GetByID handles GET /api/feedback/:id.
func (h *FeedbackHandler) GetByID(c *gin.Context) {
	rec, err := h.feedbackService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
