package cqrs

import "github.com/shopspring/decimal"

// CreateAccountCommand opens an account. A nil InitialBalance opens it empty.
type CreateAccountCommand struct {
	HolderName     string
	InitialBalance *decimal.Decimal
}

type DepositCommand struct {
	AccountID string
	Amount    decimal.Decimal
}

type WithdrawCommand struct {
	AccountID string
	Amount    decimal.Decimal
}

// RegisterUserCommand carries the raw registration input; every field is
// validated by the command service, not by the HTTP layer.
type RegisterUserCommand struct {
	FirstName      string
	LastName       string
	Email          string
	IDNumber       string
	PhoneNumber    string
	Password       string
	InitialDeposit *decimal.Decimal
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}
