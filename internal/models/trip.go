package models

// Trip is a named travel event owned by one user, container for its expenses.
type Trip struct {
	ID          int64  `json:"trip_id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"trip_name"`
	Destination string `json:"destination"`
}
