package models

import "time"

// Fixed expense categories with their own bucket in the cost breakdown.
// Anything else is free text and lands in the Other bucket.
const (
	CategoryGeneral   = "General"
	CategoryFood      = "Food"
	CategoryTravel    = "Travel"
	CategoryNightStay = "Night Stay"
)

// Expense is a single monetary record tied to one trip and one owning user.
type Expense struct {
	ID          int64     `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	TripID      int64     `json:"trip_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Method      string    `json:"method"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryBreakdown holds expense amounts summed per fixed category for one
// trip. Other collects amounts whose category matches no fixed bucket, so
// the named buckets plus Other always add up to Total.
type CategoryBreakdown struct {
	General   float64 `json:"general"`
	Food      float64 `json:"food"`
	Travel    float64 `json:"travel"`
	NightStay float64 `json:"night_stay"`
	Other     float64 `json:"other"`
	Total     float64 `json:"total"`
}
