package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"feedback-portal-backend/model"
)

// feedbackRow is the relational layout of a feedback record.
type feedbackRow struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"not null;size:255"`
	Email     *string `gorm:"size:255"`
	Phone     *string `gorm:"size:64"`
	Category  string  `gorm:"not null;size:64"`
	Rating    int     `gorm:"not null"`
	Message   string  `gorm:"not null;type:text"`
	Status    string  `gorm:"not null;default:pending;size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (feedbackRow) TableName() string { return "feedback" }

type adminRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"column:password_hash;not null;size:255"`
	CreatedAt    time.Time
}

func (adminRow) TableName() string { return "admins" }

// SQLStore implements Store on a relational engine through GORM. Filters
// become WHERE clauses and pagination, grouping and averaging are pushed to
// the engine.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the schema and wraps the connection.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&feedbackRow{}, &adminRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Insert(ctx context.Context, rec model.Feedback) (string, error) {
	row := feedbackRow{
		Name:     rec.Name,
		Email:    rec.Email,
		Phone:    rec.Phone,
		Category: rec.Category,
		Rating:   rec.Rating,
		Message:  rec.Message,
		Status:   rec.Status,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("insert feedback: %w", err)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*model.Feedback, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var row feedbackRow
	err := s.db.WithContext(ctx).First(&row, rowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	rec := rowToModel(row)
	return &rec, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, fields UpdateFields) (*model.Feedback, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var row feedbackRow
	err := s.db.WithContext(ctx).First(&row, rowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load feedback for update: %w", err)
	}

	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Email != nil {
		updates["email"] = nullable(*fields.Email)
	}
	if fields.Phone != nil {
		updates["phone"] = nullable(*fields.Phone)
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Rating != nil {
		updates["rating"] = *fields.Rating
	}
	if fields.Message != nil {
		updates["message"] = *fields.Message
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	rowID, ok := parseRowID(id)
	if !ok {
		return ErrNotFound
	}
	res := s.db.WithContext(ctx).Delete(&feedbackRow{}, rowID)
	if res.Error != nil {
		return fmt.Errorf("delete feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, f Filter, offset, limit int) ([]model.Feedback, error) {
	tx := applyFilter(s.db.WithContext(ctx).Model(&feedbackRow{}), f).
		Order("created_at DESC, id DESC")
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []feedbackRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	out := make([]model.Feedback, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToModel(row))
	}
	return out, nil
}

func (s *SQLStore) Count(ctx context.Context, f Filter) (int64, error) {
	var total int64
	tx := applyFilter(s.db.WithContext(ctx).Model(&feedbackRow{}), f)
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return total, nil
}

func (s *SQLStore) GroupCount(ctx context.Context, field string) (map[string]int64, error) {
	if field != "status" && field != "category" && field != "rating" {
		return nil, ErrInvalidField
	}
	var rows []struct {
		Value string
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&feedbackRow{}).
		Select(field + " AS value, COUNT(*) AS count").
		Group(field).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group feedback by %s: %w", field, err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Value] = r.Count
	}
	return out, nil
}

func (s *SQLStore) Average(ctx context.Context, field string) (float64, bool, error) {
	if field != "rating" {
		return 0, false, ErrInvalidField
	}
	var avg sql.NullFloat64
	row := s.db.WithContext(ctx).Model(&feedbackRow{}).Select("AVG(" + field + ")").Row()
	if err := row.Scan(&avg); err != nil {
		return 0, false, fmt.Errorf("average %s: %w", field, err)
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

func (s *SQLStore) CountByDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	// DATE_FORMAT is MySQL-only; the sqlite dialector is used by tests.
	expr := "DATE_FORMAT(created_at, '%Y-%m-%d')"
	if s.db.Dialector.Name() == "sqlite" {
		expr = "strftime('%Y-%m-%d', created_at)"
	}
	var rows []struct {
		Date  string
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&feedbackRow{}).
		Select(expr+" AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("date").
		Order("date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count feedback by day: %w", err)
	}
	out := make([]DayCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, DayCount{Date: r.Date, Count: r.Count})
	}
	return out, nil
}

func (s *SQLStore) FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var row adminRow
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &model.Admin{
		ID:           strconv.FormatUint(uint64(row.ID), 10),
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    normalizeTime(row.CreatedAt),
	}, nil
}

func (s *SQLStore) SeedAdmin(ctx context.Context, username, passwordHash string) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("username = ?", "admin").Delete(&adminRow{}).Error; err != nil {
		return fmt.Errorf("remove legacy admin: %w", err)
	}
	var existing adminRow
	err := db.Where("username = ?", username).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&adminRow{Username: username, PasswordHash: passwordHash}).Error
	}
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	return db.Model(&existing).Update("password_hash", passwordHash).Error
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// applyFilter translates the logical filter into WHERE clauses. The search
// predicate is lowercased on both sides so the match is case-insensitive on
// every engine regardless of collation.
func applyFilter(tx *gorm.DB, f Filter) *gorm.DB {
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q := "%" + asciiLower(f.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(message) LIKE ? OR LOWER(email) LIKE ?", q, q, q)
	}
	return tx
}

func parseRowID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// nullable maps an empty optional to NULL, matching submit normalization.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func rowToModel(row feedbackRow) model.Feedback {
	return model.Feedback{
		ID:        strconv.FormatUint(uint64(row.ID), 10),
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Category:  row.Category,
		Rating:    row.Rating,
		Message:   row.Message,
		Status:    row.Status,
		CreatedAt: normalizeTime(row.CreatedAt),
		UpdatedAt: normalizeTime(row.UpdatedAt),
	}
}
