package entity

import "time"

// Match links a deal to a subscription it scored well against.
// Notification flags are owned by the notification layer.
type Match struct {
	ID             string     `json:"id"`
	SubscriptionID uint       `json:"subscription_id"`
	DealID         string     `json:"deal_id"`
	MatchScore     float64    `json:"match_score"`
	Summary        string     `json:"summary"`
	Notified       bool       `json:"notified"`
	NotifiedAt     *time.Time `json:"notified_at,omitempty"`
	EmailSent      bool       `json:"email_sent"`
	EmailOpened    bool       `json:"email_opened"`
	LinkClicked    bool       `json:"link_clicked"`
	CreatedAt      time.Time  `json:"created_at"`
}

// RationaleRequest carries what the summarizer needs to explain a match.
type RationaleRequest struct {
	SubscriptionText string
	Route            string
	Price            float64
	Currency         string
	Airline          string
	DepartureDate    string
	ReturnDate       string
}
