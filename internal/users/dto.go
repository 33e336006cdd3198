package users

import (
	"strings"

	"github.com/autolux/marketplace-api/internal/utils"
)

const minPasswordLen = 6

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Phone    string `json:"phone"`
}

func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Name == "" {
		return utils.Invalid("name is required")
	}
	if !strings.Contains(r.Email, "@") {
		return utils.Invalid("email is invalid")
	}
	if len(r.Password) < minPasswordLen {
		return utils.Invalid("password must have at least 6 characters")
	}
	if r.Role == "" {
		r.Role = RoleUser
	}
	if !r.Role.Valid() {
		return utils.Invalid("unknown role")
	}
	return nil
}

// UpdateUserRequest is used on PUT /users/{id}; nil fields are left alone.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return utils.Invalid("name must not be empty")
	}
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		if !strings.Contains(e, "@") {
			return utils.Invalid("email is invalid")
		}
		r.Email = &e
	}
	if r.Password != nil && len(*r.Password) < minPasswordLen {
		return utils.Invalid("password must have at least 6 characters")
	}
	if r.Role != nil && !r.Role.Valid() {
		return utils.Invalid("unknown role")
	}
	return nil
}
