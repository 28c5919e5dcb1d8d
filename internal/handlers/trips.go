package handlers

import (
	"net/http"
	"strings"

	"trip-tracker/internal/models"
)

// TripsViewModel is the data passed to the trips list template.
type TripsViewModel struct {
	Username string
	Trips    []models.Trip
}

// TripsPage renders the list of the caller's trips.
func (h *Handlers) TripsPage(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	trips, err := h.db.ListTrips(user.ID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("list trips failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "index.html", TripsViewModel{Username: user.Username, Trips: trips})
}

// CreateTrip handles the new-trip form submission.
func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := r.ParseForm(); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	name := strings.TrimSpace(r.FormValue("tripName"))
	destination := strings.TrimSpace(r.FormValue("tripDestination"))
	if name == "" || destination == "" {
		h.jsonError(w, http.StatusBadRequest, "'tripName' and 'tripDestination' are required")
		return
	}

	if _, err := h.db.CreateTrip(user.ID, name, destination); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("create trip failed")
		h.jsonError(w, http.StatusInternalServerError, "could not create trip")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
