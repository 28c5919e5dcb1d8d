package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"trip-tracker/internal/models"
)

// CreateTrip inserts a new trip owned by the given user.
func (db *DB) CreateTrip(ownerID int64, name, destination string) (*models.Trip, error) {
	result, err := db.conn.Exec(
		"INSERT INTO trips (user_id, trip_name, destination) VALUES (?, ?, ?)",
		ownerID, name, destination,
	)
	if err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Trip{ID: id, UserID: ownerID, Name: name, Destination: destination}, nil
}

// ListTrips returns all trips owned by the given user, in insertion order.
func (db *DB) ListTrips(ownerID int64) ([]models.Trip, error) {
	rows, err := db.conn.Query(
		"SELECT trip_id, user_id, trip_name, destination FROM trips WHERE user_id = ?",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Destination); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}

// GetTrip retrieves a trip by ID, scoped to its owner. A trip owned by
// another user looks exactly like a missing one.
func (db *DB) GetTrip(tripID, ownerID int64) (*models.Trip, error) {
	row := db.conn.QueryRow(
		"SELECT trip_id, user_id, trip_name, destination FROM trips WHERE trip_id = ? AND user_id = ?",
		tripID, ownerID,
	)

	var t models.Trip
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Destination); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
