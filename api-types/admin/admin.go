package admin

import (
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/api-types/misc/rfctime"
)

type ActionLog struct {
	Id           int             `json:"id"`
	AdminId      int             `json:"admin_id"`
	Action       string          `json:"action"`
	TargetUserId *int            `json:"target_user_id,omitempty"`
	Details      string          `json:"details,omitempty"`
	CreatedAt    rfctime.RFC3339 `json:"created_at"`
}

// Page selects a window of a list by offset.
type Page struct {
	Skip  int
	Limit int
}

func DefaultPage() Page {
	return Page{Skip: 0, Limit: 100}
}

type UserQuery struct {
	Page
	Search string
	Role   auth.Role
}

type RequestQuery struct {
	Page
	Status string
}

type ActivationUpdate struct {
	IsActive bool `json:"is_active"`
}

type RoleUpdate struct {
	Role auth.Role `json:"role"`
}
