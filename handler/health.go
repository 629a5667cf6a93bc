package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"feedback-portal-backend/store"
)

// HealthCheckResponse reports overall and per-service health.
type HealthCheckResponse struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Uptime    string                   `json:"uptime"`
	Services  map[string]ServiceStatus `json:"services"`
	System    SystemInfo               `json:"system"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	Architecture string `json:"architecture"`
	OS           string `json:"os"`
	NumCPU       int    `json:"num_cpu"`
}

var startTime = time.Now()

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).String(),
		Services:  make(map[string]ServiceStatus),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			Architecture: runtime.GOARCH,
			OS:           runtime.GOOS,
			NumCPU:       runtime.NumCPU(),
		},
	}

	start := time.Now()
	if err := h.store.Ping(c.Request.Context()); err != nil {
		response.Status = "unhealthy"
		response.Services["database"] = ServiceStatus{Status: "unhealthy", Message: err.Error()}
	} else {
		response.Services["database"] = ServiceStatus{Status: "healthy", Latency: time.Since(start).String()}
	}

	code := http.StatusOK
	if response.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, response)
}
