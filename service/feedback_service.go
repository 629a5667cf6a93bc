package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"feedback-portal-backend/model"
	"feedback-portal-backend/store"
)

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated field, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New()

// FeedbackService is the repository over the record store: validation,
// submission, lookup, filtered listing, partial update and deletion.
type FeedbackService struct {
	store store.Store
}

func NewFeedbackService(s store.Store) *FeedbackService {
	return &FeedbackService{store: s}
}

// Submit validates a public submission and persists it with status pending.
// Empty optional fields are normalized to null before storage.
func (s *FeedbackService) Submit(ctx context.Context, req model.CreateFeedbackRequest) (string, error) {
	var fields []FieldError
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if req.Email != "" {
		if err := validate.Var(req.Email, "email"); err != nil {
			fields = append(fields, FieldError{Field: "email", Message: "Invalid email"})
		}
	}
	if strings.TrimSpace(req.Category) == "" {
		fields = append(fields, FieldError{Field: "category", Message: "Category is required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		fields = append(fields, FieldError{Field: "rating", Message: "Rating must be between 1 and 5"})
	}
	if strings.TrimSpace(req.Message) == "" {
		fields = append(fields, FieldError{Field: "message", Message: "Message is required"})
	}
	if len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}

	rec := model.Feedback{
		Name:     strings.TrimSpace(req.Name),
		Email:    optional(req.Email),
		Phone:    optional(req.Phone),
		Category: req.Category,
		Rating:   req.Rating,
		Message:  strings.TrimSpace(req.Message),
		Status:   model.StatusPending,
	}
	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("submit feedback: %w", err)
	}
	return id, nil
}

// Get returns one record or store.ErrNotFound.
func (s *FeedbackService) Get(ctx context.Context, id string) (*model.Feedback, error) {
	return s.store.Get(ctx, id)
}

// PublicList serves the unauthenticated listing: equality filters plus a
// plain offset/limit window, no pagination envelope.
func (s *FeedbackService) PublicList(ctx context.Context, status, category string, limit, offset int) ([]model.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	f := store.Filter{Status: status, Category: category}
	return s.store.List(ctx, f, offset, limit)
}

// List serves the admin listing: 1-indexed pages with a pagination envelope
// whose total reflects the filtered count.
func (s *FeedbackService) List(ctx context.Context, f store.Filter, page, limit int) (*model.ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	records, err := s.store.List(ctx, f, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return &model.ListResult{
		Feedback: records,
		Pagination: model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int64(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// Update applies a partial admin edit. Provided values are validated with
// the same rules as submission; an empty request is a validation error.
func (s *FeedbackService) Update(ctx context.Context, id string, req model.UpdateFeedbackRequest) (*model.Feedback, error) {
	if req.Empty() {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "", Message: "No valid fields to update"},
		}}
	}

	var fields []FieldError
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if req.Email != nil && *req.Email != "" {
		if err := validate.Var(*req.Email, "email"); err != nil {
			fields = append(fields, FieldError{Field: "email", Message: "Invalid email"})
		}
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		fields = append(fields, FieldError{Field: "category", Message: "Category is required"})
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		fields = append(fields, FieldError{Field: "rating", Message: "Rating must be between 1 and 5"})
	}
	if req.Message != nil && strings.TrimSpace(*req.Message) == "" {
		fields = append(fields, FieldError{Field: "message", Message: "Message is required"})
	}
	if req.Status != nil && !model.IsValidStatus(*req.Status) {
		fields = append(fields, FieldError{Field: "status", Message: "Invalid status"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return s.store.Update(ctx, id, store.UpdateFields{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Rating:   req.Rating,
		Message:  req.Message,
		Status:   req.Status,
	})
}

// Delete permanently removes a record, store.ErrNotFound if absent.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
