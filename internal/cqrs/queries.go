package cqrs

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by its opaque ID.
type GetAccountQuery struct {
	AccountID string
}

// ---------- User queries ----------

// GetUserQuery fetches a single user by ID.
type GetUserQuery struct {
	UserID string
}

// GetUserByEmailQuery fetches a single user by email address.
type GetUserByEmailQuery struct {
	Email string
}
