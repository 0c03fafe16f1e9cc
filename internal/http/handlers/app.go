package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// App holds what the plain HTTP endpoints report next to the MCP transport.
type App struct {
	Name      string
	Version   string
	StartedAt time.Time
}

func NewApp(name, version string) *App {
	return &App{Name: name, Version: version, StartedAt: time.Now()}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
