package entity

import "time"

// Subscription is a standing travel preference registered by a user.
// Every field except Prompt is optional; empty strings and a nil MaxPrice
// mean "no preference".
type Subscription struct {
	ID          uint
	UserID      uint
	Prompt      string
	Origin      string
	Destination string
	MaxPrice    *float64
	StartDate   string // "April 2026" or "2026-04-01"
	EndDate     string
	IsActive    bool
	CreatedAt   time.Time
}
