package domain

import "time"

// WellKnownID is the single counter this service operates on.
const WellKnownID = "main_counter"

type Counter struct {
	ID        string
	Value     int64
	UpdatedAt time.Time
}
