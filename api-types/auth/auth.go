package auth

import "github.com/synthgen/synthctl/api-types/misc/rfctime"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	Id       int    `json:"id"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Username string `json:"username,omitempty"`
	IsActive bool   `json:"is_active"`
}

func (u User) Equal(o User) bool {
	return u.Id == o.Id &&
		u.Email == o.Email &&
		u.Role == o.Role &&
		u.Username == o.Username &&
		u.IsActive == o.IsActive
}

// LoginResponse is the answer of POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type SignupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	FullName     string `json:"full_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	UsagePurpose string `json:"usage_purpose,omitempty"`
}

type SignupResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

type Profile struct {
	Id           int              `json:"id"`
	UserId       int              `json:"user_id"`
	FullName     string           `json:"full_name,omitempty"`
	Organization string           `json:"organization,omitempty"`
	UsagePurpose string           `json:"usage_purpose,omitempty"`
	CreatedAt    *rfctime.RFC3339 `json:"created_at,omitempty"`
	UpdatedAt    *rfctime.RFC3339 `json:"updated_at,omitempty"`
}

// ProfileUpdate holds fields to be changed. nil fields are left as is.
type ProfileUpdate struct {
	FullName     *string `json:"full_name,omitempty"`
	Organization *string `json:"organization,omitempty"`
	UsagePurpose *string `json:"usage_purpose,omitempty"`
}

func (pu ProfileUpdate) Empty() bool {
	return pu.FullName == nil && pu.Organization == nil && pu.UsagePurpose == nil
}
