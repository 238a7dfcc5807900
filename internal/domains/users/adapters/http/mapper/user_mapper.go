package mapper

import userdomain "github.com/Apurer/bizrecipe-api/internal/domains/users/domain"

// User represents the transport-level user payload.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
}

// ToDomainUser converts a transport user to its domain counterpart. The id
// may be empty; the service assigns one.
func ToDomainUser(model User) *userdomain.User {
	return &userdomain.User{ID: model.ID, Username: model.Username}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{ID: user.ID, Username: user.Username}
}
