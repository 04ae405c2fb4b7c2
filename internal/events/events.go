package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	BalanceUpdated = "balance.updated"

	UserRegistered = "user.registered"
)

// Stream names
const (
	AccountEventsStream = "account.events"
	UserEventsStream    = "user.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID         string `json:"accountId"`
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
	OpeningBalance    string `json:"openingBalance"`
}

// BalanceUpdatedEvent is emitted after a deposit or withdrawal. Change is
// signed: negative for withdrawals.
type BalanceUpdatedEvent struct {
	AccountID  string `json:"accountId"`
	Operation  string `json:"operation"`
	Change     string `json:"change"`
	NewBalance string `json:"newBalance"`
}

// User events
type UserRegisteredEvent struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	AccountID string `json:"accountId"`
}
