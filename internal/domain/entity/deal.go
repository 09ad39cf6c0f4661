// internal/domain/entity/deal.go
package entity

import (
	"time"
)

// Deal match status
const (
	DealStatusPending = "PENDING"
	DealStatusMatched = "MATCHED"
	DealStatusFailed  = "FAILED"
)

// Deal represents one flight offer extracted from a promotional email.
// Date fields are free-form and not guaranteed to be parseable.
type Deal struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Source        string     `bson:"source" json:"source,omitempty"`
	SourceEmailID string     `bson:"sourceEmailId" json:"source_email_id,omitempty"`
	Airline       string     `bson:"airline" json:"airline"`
	FlightNumber  string     `bson:"flightNumber" json:"flight_number,omitempty"`
	Route         string     `bson:"route" json:"route"`
	DepartureCity string     `bson:"departureCity" json:"departure_city"`
	ArrivalCity   string     `bson:"arrivalCity" json:"arrival_city"`
	DepartureDate string     `bson:"departureDate" json:"departure_date,omitempty"`
	ReturnDate    string     `bson:"returnDate" json:"return_date,omitempty"`
	Price         float64    `bson:"price" json:"price"`
	Currency      string     `bson:"currency" json:"currency"`
	BookingLink   string     `bson:"bookingLink" json:"booking_link,omitempty"`
	RawContent    string     `bson:"rawContent" json:"-"`
	ParsedAt      time.Time  `bson:"parsedAt" json:"parsed_at"`
	ExpiresAt     *time.Time `bson:"expiresAt,omitempty" json:"expires_at,omitempty"`

	// Pipeline bookkeeping
	MatchStatus string     `bson:"matchStatus" json:"match_status,omitempty"`
	MatchedAt   *time.Time `bson:"matchedAt,omitempty" json:"matched_at,omitempty"`
	MatchCount  int        `bson:"matchCount" json:"match_count"`
	ErrorDetail string     `bson:"errorDetail,omitempty" json:"error_detail,omitempty"`
}
