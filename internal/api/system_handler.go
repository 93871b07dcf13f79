// Package api contains the HTTP handlers, request models and error mapping
// for the weeklist service.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/weeklisthq/weeklist-api/internal/api/shared"
)

const healthcheckTimeout = 2 * time.Second

// HealthData is the healthcheck payload.
type HealthData struct {
	ServerName  string    `json:"serverName"`
	CurrentTime time.Time `json:"currentTime"`
	State       string    `json:"state"`
}

// SystemHandler serves the routes that are not tied to a domain entity: the
// welcome route, the healthcheck and the catch-all.
type SystemHandler struct {
	db         *sql.DB
	serverName string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *sql.DB, serverName string) *SystemHandler {
	return &SystemHandler{db: db, serverName: serverName}
}

// Root handles GET / for authenticated users.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithMessage(w, r, http.StatusOK, "Welcome to the content")
}

// Healthcheck handles GET /healthcheck. It pings the database; a failed ping
// reports the service as degraded with a 503.
func (h *SystemHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	data := HealthData{
		ServerName:  h.serverName,
		CurrentTime: time.Now().UTC(),
		State:       "active",
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		data.State = "degraded"
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, shared.Envelope{
			Message: "Healthcheck failed!",
			Data:    data,
		})
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Server is healthy!", data)
}

// NotFound handles every unmatched route.
func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithMessage(w, r, http.StatusNotFound, "Page not found!")
}
