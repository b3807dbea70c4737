package models

// User is a registered account. The password hash and access token are
// never serialized into API responses.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	AccessToken  string `json:"-"`
}
