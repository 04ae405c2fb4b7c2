package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the write model of a bank account.
type Account struct {
	ID                string
	AccountHolderName string
	Balance           decimal.Decimal
	AccountNumber     string
	CreatedAt         time.Time
}

// User is a registered identity. Account is populated by the services when
// the owned account has been loaded; AccountID is always set.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	IDNumber     string
	PhoneNumber  string
	PasswordHash string
	AccountID    string
	CreatedAt    time.Time

	Account *Account
}

// FullName is the holder name given to the account opened at registration.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
