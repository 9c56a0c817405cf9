package models

// User is the profile returned by the backend on login. It is stored
// verbatim in durable storage under the "user" key.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
