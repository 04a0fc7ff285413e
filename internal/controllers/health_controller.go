package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/structures"
	"net/http"
	"time"
)

type HealthController struct {
	store     kvstore.Store
	backend   string
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Backend       string  `json:"backend"`
	Keys          int     `json:"keys"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Backend:       hc.backend,
	}
	status := http.StatusOK
	keys, err := hc.store.Keys()
	if err != nil {
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	resp.Keys = len(keys)

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, store kvstore.Store) *HealthController {
	return &HealthController{
		store:     store,
		backend:   conf.Store.Backend,
		startTime: time.Now(),
	}
}
