package limit

import (
	"sync"
	"time"
)

// SubmitCount tracks one client's submissions inside the current window.
type SubmitCount struct {
	Count     int
	LastReset time.Time
}

// MaxSubmissionsPerDay caps public form submissions per client IP.
const MaxSubmissionsPerDay = 10

var (
	counts = make(map[string]*SubmitCount)
	mu     sync.Mutex
)

// CheckSubmitLimit reports whether the given client IP may submit another
// feedback entry. The counter resets 24 hours after its first submission.
func CheckSubmitLimit(ip string) bool {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	count, exists := counts[ip]
	if !exists || now.Sub(count.LastReset) > 24*time.Hour {
		counts[ip] = &SubmitCount{Count: 0, LastReset: now}
		count = counts[ip]
	}

	if count.Count >= MaxSubmissionsPerDay {
		return false
	}
	count.Count++
	return true
}
