package handlers

import (
	"net/http"
	"time"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"name":           a.Name,
		"version":        a.Version,
		"uptime_seconds": int64(time.Since(a.StartedAt).Seconds()),
	})
}
