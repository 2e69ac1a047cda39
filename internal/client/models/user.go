package models

// UserProfile mirrors the profile endpoint response. Age and Bio are
// nullable server-side. The profile is replaced wholesale on every fetch
// and never mutated locally.
type UserProfile struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Age      *int    `json:"age"`
	Bio      *string `json:"bio"`
}
