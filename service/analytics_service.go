package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"feedback-portal-backend/model"
	"feedback-portal-backend/store"
)

// AnalyticsService computes the dashboard snapshot from the record store.
// The store decides whether the grouped figures come from engine-side
// queries or a local reduction; the snapshot is identical either way.
type AnalyticsService struct {
	store store.Store
}

func NewAnalyticsService(s store.Store) *AnalyticsService {
	return &AnalyticsService{store: s}
}

// Compute builds a point-in-time aggregate over all records.
func (s *AnalyticsService) Compute(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	snap := &model.AnalyticsSnapshot{
		ByStatus:   []model.StatusCount{},
		ByCategory: []model.CategoryCount{},
	}

	total, err := s.store.Count(ctx, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("total count: %w", err)
	}
	snap.Total = total

	byStatus, err := s.store.GroupCount(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("group by status: %w", err)
	}
	for _, status := range sortedKeys(byStatus) {
		snap.ByStatus = append(snap.ByStatus, model.StatusCount{Status: status, Count: byStatus[status]})
	}

	byCategory, err := s.store.GroupCount(ctx, "category")
	if err != nil {
		return nil, fmt.Errorf("group by category: %w", err)
	}
	for _, category := range sortedKeys(byCategory) {
		snap.ByCategory = append(snap.ByCategory, model.CategoryCount{Category: category, Count: byCategory[category]})
	}

	avg, ok, err := s.store.Average(ctx, "rating")
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if ok {
		snap.AvgRating = math.Round(avg*100) / 100
	}

	byRating, err := s.store.GroupCount(ctx, "rating")
	if err != nil {
		return nil, fmt.Errorf("group by rating: %w", err)
	}
	// Rating is a closed 1..5 domain, so absent bins are zero-filled.
	for rating := 1; rating <= 5; rating++ {
		snap.RatingDistribution = append(snap.RatingDistribution, model.RatingCount{
			Rating: rating,
			Count:  byRating[strconv.Itoa(rating)],
		})
	}

	since := time.Now().UTC().AddDate(0, 0, -7)
	trend, err := s.store.CountByDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("recent trend: %w", err)
	}
	snap.RecentTrends = make([]model.TrendPoint, 0, len(trend))
	for _, day := range trend {
		snap.RecentTrends = append(snap.RecentTrends, model.TrendPoint{Date: day.Date, Count: day.Count})
	}

	return snap, nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
