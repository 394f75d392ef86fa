// Package models defines the data types exchanged between the Authly API
// client and the rest of the CLI.
package models

import "strconv"

// User is the account identity returned by the Authly API.
// The zero value means "no user".
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// IsZero reports whether the user carries no identity at all.
func (u User) IsZero() bool {
	return u.ID == 0 && u.Email == "" && u.Username == ""
}

// Label returns the best human-readable identifier for the user:
// email when present, otherwise username, otherwise the numeric ID.
func (u User) Label() string {
	switch {
	case u.Email != "":
		return u.Email
	case u.Username != "":
		return u.Username
	case u.ID != 0:
		return "user #" + strconv.FormatInt(u.ID, 10)
	default:
		return ""
	}
}

// Credentials are the fields submitted on sign-up and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
