package model

// AnalyticsSnapshot is the dashboard aggregate computed over the whole store.
//
// byStatus and byCategory carry only the values actually present; the rating
// distribution is a fixed 1..5 histogram and is zero-filled because its
// domain is closed and known in advance.
type AnalyticsSnapshot struct {
	Total              int64           `json:"total"`
	ByStatus           []StatusCount   `json:"byStatus"`
	ByCategory         []CategoryCount `json:"byCategory"`
	AvgRating          float64         `json:"avgRating"`
	RatingDistribution []RatingCount   `json:"ratingDistribution"`
	RecentTrends       []TrendPoint    `json:"recentTrends"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
