package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"coworkadmin/pkg/metrics"
)

// Пороги деградации для проверки здоровья
const (
	memoryWarnBytes    = 1 << 30 // 1 GiB
	goroutinesWarnHigh = 10000
)

type healthCheck struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type healthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]healthCheck `json:"checks"`
	Uptime string                 `json:"uptime"`
}

var startTime = time.Now()

// HealthHandler проверяет БД, память и горутины.
// При недоступной БД отвечает 503.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Checks: make(map[string]healthCheck),
		Uptime: time.Since(startTime).Round(time.Second).String(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		resp.Status = "unavailable"
		resp.Checks["database"] = healthCheck{Status: "failed", Detail: err.Error()}
	} else {
		resp.Checks["database"] = healthCheck{Status: "ok"}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	metrics.MemoryUsage.Set(float64(mem.Alloc))
	if mem.Alloc > memoryWarnBytes {
		if resp.Status == "ok" {
			resp.Status = "degraded"
		}
		resp.Checks["memory"] = healthCheck{Status: "warning", Detail: "высокое потребление памяти"}
	} else {
		resp.Checks["memory"] = healthCheck{Status: "ok"}
	}

	goroutines := runtime.NumGoroutine()
	metrics.GoroutinesCount.Set(float64(goroutines))
	if goroutines > goroutinesWarnHigh {
		if resp.Status == "ok" {
			resp.Status = "degraded"
		}
		resp.Checks["goroutines"] = healthCheck{Status: "warning", Detail: "слишком много горутин"}
	} else {
		resp.Checks["goroutines"] = healthCheck{Status: "ok"}
	}

	status := http.StatusOK
	if resp.Status == "unavailable" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
