package model

// Feedback statuses. New submissions always start out pending; the other
// values are only reachable through an admin update.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusResolved = "resolved"
	StatusArchived = "archived"
)

// ValidStatuses lists every accepted feedback status.
var ValidStatuses = []string{StatusPending, StatusReviewed, StatusResolved, StatusArchived}

// IsValidStatus reports whether s is one of the accepted statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Feedback is the canonical record shape every layer above the store sees.
// Backend-specific ids (autoincrement integers, ObjectID hex) are normalized
// to strings and timestamps to RFC 3339 UTC at the store boundary.
type Feedback struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Category  string  `json:"category"`
	Rating    int     `json:"rating"`
	Message   string  `json:"message"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateFeedbackRequest is the public submission payload.
type CreateFeedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Message  string `json:"message"`
}

// UpdateFeedbackRequest carries a partial admin edit. Every settable field is
// an optional pointer; a nil field is left untouched. Keys outside this set
// cannot be expressed at all, so there is no runtime allowlist.
type UpdateFeedbackRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Category *string `json:"category"`
	Rating   *int    `json:"rating"`
	Message  *string `json:"message"`
	Status   *string `json:"status"`
}

// Empty reports whether the request carries no fields at all.
func (r UpdateFeedbackRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Category == nil &&
		r.Rating == nil && r.Message == nil && r.Status == nil
}

// Pagination is the envelope returned alongside admin listings.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ListResult bundles one page of feedback with its pagination envelope.
type ListResult struct {
	Feedback   []Feedback `json:"feedback"`
	Pagination Pagination `json:"pagination"`
}
