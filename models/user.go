package models

type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password"` // bcrypt hash, or plaintext for legacy seeded accounts
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	// MerchantID is nil for admins.
	MerchantID *int `json:"merchantId"`
}

// AccountSummary is the account shape returned by login and register.
type AccountSummary struct {
	ID         int      `json:"id"`
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Role       UserRole `json:"role"`
	MerchantID *int     `json:"merchantId"`
}

func (u User) Summary() AccountSummary {
	return AccountSummary{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		MerchantID: u.MerchantID,
	}
}
