package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID       = errors.New("user id is required")
	ErrEmptyUsername = errors.New("username is required")
)

// User is the minimal account record other contexts reference by id.
type User struct {
	ID       string
	Username string
}

// NewUser builds a user ensuring required invariants.
func NewUser(id, username string) (*User, error) {
	user := &User{}
	if err := user.SetID(id); err != nil {
		return nil, err
	}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *User) SetID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	u.ID = id
	return nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// DisplayName is what other contexts show for this user.
func (u *User) DisplayName() string {
	return u.Username
}
