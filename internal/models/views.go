package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with exactly two fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// AccountView is the JSON projection of an account.
// Balance is a decimal string so no precision is lost on the wire.
type AccountView struct {
	ID                string    `json:"id"`
	AccountHolderName string    `json:"accountHolderName"`
	Balance           string    `json:"balance"`
	AccountNumber     string    `json:"accountNumber"`
	CreatedAt         time.Time `json:"createdAt"`
}

func NewAccountView(a *Account) *AccountView {
	return &AccountView{
		ID:                a.ID,
		AccountHolderName: a.AccountHolderName,
		Balance:           FormatMoney(a.Balance),
		AccountNumber:     a.AccountNumber,
		CreatedAt:         a.CreatedAt,
	}
}

// ProfileView is the public profile of a user. It never exposes the
// password hash or the national id number.
type ProfileView struct {
	UserID        string `json:"userId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

func NewProfileView(u *User) *ProfileView {
	view := &ProfileView{
		UserID:      u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
	if u.Account != nil {
		view.AccountNumber = u.Account.AccountNumber
		view.Balance = FormatMoney(u.Account.Balance)
	}
	return view
}
