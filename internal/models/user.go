// internal/models/user.go
package models

import (
	"strconv"
	"time"
)

// User is a staff account. Password holds the bcrypt hash and never leaves the process.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the user shape returned to callers.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// CustomOption is a staff-defined dropdown value for one profile field.
type CustomOption struct {
	ID        int64     `json:"id"`
	FieldType string    `json:"fieldType"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

func itoa(i int64) string { return strconv.FormatInt(i, 10) }
