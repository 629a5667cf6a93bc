package service

import (
	"context"
	"testing"

	"feedback-portal-backend/model"
)

func seedAnalyticsFixture(t *testing.T, svc *FeedbackService) {
	t.Helper()
	ctx := context.Background()
	seeds := []struct {
		category string
		rating   int
	}{
		{"Academic", 5},
		{"Academic", 4},
		{"Facilities", 4},
		{"Technology", 1},
	}
	for _, s := range seeds {
		req := validSubmission()
		req.Category = s.category
		req.Rating = s.rating
		if _, err := svc.Submit(ctx, req); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestComputeSnapshot(t *testing.T) {
	st := newTestStore(t)
	feedback := NewFeedbackService(st)
	analytics := NewAnalyticsService(st)
	seedAnalyticsFixture(t, feedback)

	snap, err := analytics.Compute(context.Background())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if snap.Total != 4 {
		t.Errorf("total = %d, want 4", snap.Total)
	}

	// byStatus counts must sum to the total.
	var statusSum int64
	for _, sc := range snap.ByStatus {
		statusSum += sc.Count
	}
	if statusSum != snap.Total {
		t.Errorf("byStatus sums to %d, want %d", statusSum, snap.Total)
	}
	// Everything is fresh, so only pending is present: no zero-filling of
	// absent statuses.
	if len(snap.ByStatus) != 1 || snap.ByStatus[0].Status != model.StatusPending {
		t.Errorf("byStatus = %+v, want a single pending bucket", snap.ByStatus)
	}

	if len(snap.ByCategory) != 3 {
		t.Errorf("byCategory has %d buckets, want 3", len(snap.ByCategory))
	}

	// (5+4+4+1)/4 = 3.5
	if snap.AvgRating != 3.5 {
		t.Errorf("avgRating = %v, want 3.5", snap.AvgRating)
	}

	// Fixed-domain histogram: always 5 bins, in order, zero-filled.
	if len(snap.RatingDistribution) != 5 {
		t.Fatalf("ratingDistribution has %d bins, want 5", len(snap.RatingDistribution))
	}
	var ratingSum int64
	for i, rc := range snap.RatingDistribution {
		if rc.Rating != i+1 {
			t.Errorf("bin %d has rating %d", i, rc.Rating)
		}
		ratingSum += rc.Count
	}
	if ratingSum != snap.Total {
		t.Errorf("ratingDistribution sums to %d, want %d", ratingSum, snap.Total)
	}
	if snap.RatingDistribution[1].Count != 0 || snap.RatingDistribution[2].Count != 0 {
		t.Errorf("absent ratings not zero-filled: %+v", snap.RatingDistribution)
	}
	if snap.RatingDistribution[3].Count != 2 {
		t.Errorf("rating 4 count = %d, want 2", snap.RatingDistribution[3].Count)
	}

	// Everything was created today, inside the trailing 7-day window.
	var trendSum int64
	for _, p := range snap.RecentTrends {
		trendSum += p.Count
	}
	if trendSum != snap.Total {
		t.Errorf("recentTrends sums to %d, want %d", trendSum, snap.Total)
	}
}

func TestComputeSnapshotEmpty(t *testing.T) {
	analytics := NewAnalyticsService(newTestStore(t))

	snap, err := analytics.Compute(context.Background())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if snap.Total != 0 {
		t.Errorf("total = %d", snap.Total)
	}
	if snap.AvgRating != 0 {
		t.Errorf("avgRating = %v, want 0 on empty store", snap.AvgRating)
	}
	if len(snap.ByStatus) != 0 || len(snap.ByCategory) != 0 {
		t.Errorf("grouped buckets on empty store: %+v %+v", snap.ByStatus, snap.ByCategory)
	}
	if len(snap.RatingDistribution) != 5 {
		t.Errorf("ratingDistribution has %d bins, want 5 even when empty", len(snap.RatingDistribution))
	}
	if len(snap.RecentTrends) != 0 {
		t.Errorf("recentTrends = %+v, want empty", snap.RecentTrends)
	}
}

func TestComputeAvgRatingRounding(t *testing.T) {
	st := newTestStore(t)
	feedback := NewFeedbackService(st)
	analytics := NewAnalyticsService(st)

	for _, rating := range []int{5, 5, 4} {
		req := validSubmission()
		req.Rating = rating
		if _, err := feedback.Submit(context.Background(), req); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := analytics.Compute(context.Background())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// 14/3 = 4.666..., rounded to two decimals.
	if snap.AvgRating != 4.67 {
		t.Errorf("avgRating = %v, want 4.67", snap.AvgRating)
	}
}
