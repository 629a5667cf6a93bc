package store

import (
	"context"
	"errors"
	"time"

	"feedback-portal-backend/model"
)

// ErrNotFound is returned when an id does not resolve to a record. Lookups
// with ids that cannot even be parsed by the backend report the same error.
var ErrNotFound = errors.New("record not found")

// ErrInvalidField is returned by GroupCount and Average for fields outside
// the aggregatable set.
var ErrInvalidField = errors.New("invalid aggregate field")

// Filter is the conjunction of predicates applied to listing and counting.
// Empty strings mean "unset". Search is a substring match across name,
// message and email, case-insensitive for ASCII letters (see asciiLower).
type Filter struct {
	Status   string
	Category string
	Search   string
}

// UpdateFields is a partial feedback mutation. Nil fields are untouched.
// Email and Phone set to the empty string clear the stored value to null,
// mirroring how submission normalizes empty optionals.
type UpdateFields struct {
	Name     *string
	Email    *string
	Phone    *string
	Category *string
	Rating   *int
	Message  *string
	Status   *string
}

// DayCount is one point of the creation-date trend.
type DayCount struct {
	Date  string
	Count int64
}

// Store is the uniform contract over a feedback record store. Both
// implementations (relational and document) must return identical results
// for identical logical contents: same counts, same group maps, same
// averages, same page windows under the created_at-descending order with an
// id-descending tiebreak.
type Store interface {
	// Insert persists a new record. The backend assigns the id and both
	// timestamps; the returned id is the normalized string form.
	Insert(ctx context.Context, rec model.Feedback) (string, error)
	Get(ctx context.Context, id string) (*model.Feedback, error)
	// Update applies the non-nil fields and refreshes updated_at. The id and
	// created_at are never touched.
	Update(ctx context.Context, id string, fields UpdateFields) (*model.Feedback, error)
	Delete(ctx context.Context, id string) error

	// List returns the filtered records ordered by created_at descending,
	// windowed by offset/limit. A limit <= 0 means no limit.
	List(ctx context.Context, f Filter, offset, limit int) ([]model.Feedback, error)
	Count(ctx context.Context, f Filter) (int64, error)

	// GroupCount counts records grouped by field, which must be one of
	// "status", "category" or "rating". Rating keys are decimal strings.
	GroupCount(ctx context.Context, field string) (map[string]int64, error)
	// Average returns the mean of the named numeric field ("rating") and
	// false when the store is empty.
	Average(ctx context.Context, field string) (float64, bool, error)
	// CountByDay counts records created at or after since, grouped by
	// calendar date (YYYY-MM-DD), ascending. Days without records are absent.
	CountByDay(ctx context.Context, since time.Time) ([]DayCount, error)

	// FindAdminByUsername resolves the admin principal, ErrNotFound if absent.
	FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	// SeedAdmin idempotently upserts the default principal, refreshing the
	// stored hash on every startup, and drops the legacy "admin" account.
	SeedAdmin(ctx context.Context, username, passwordHash string) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// normalizeTime renders a backend timestamp in the canonical wire form.
func normalizeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// asciiLower folds ASCII letters only. SQLite's LOWER() folds nothing
// beyond ASCII, so this is the folding both backends can agree on;
// search stays case-sensitive for non-ASCII input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
