package models

import "time"

// Role is the closed set of account roles the portal knows about.
// Membership checks are exact: there is no hierarchy between roles.
type Role string

const (
	RoleUser     Role = "user"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"

	// RoleGuest is the sentinel for "no user cached". It never appears
	// in a backend payload and never satisfies an allow-list.
	RoleGuest Role = "guest"
)

// ParseRole maps a backend role string onto the closed enumeration.
// Unknown strings fall back to RoleGuest so a typo in a payload can
// never grant access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleEmployee, RoleAdmin:
		return Role(s)
	}
	return RoleGuest
}

func (r Role) String() string { return string(r) }

// User is the profile record the backend confirms for a bearer token.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// DisplayName is what the layout shows in the sidebar user card.
func (u *User) DisplayName() string {
	if u == nil {
		return "User"
	}
	if u.LastName != "" {
		return u.Name + " " + u.LastName
	}
	return u.Name
}

// Job mirrors the job records returned by the backend jobs API.
type Job struct {
	ID           string    `json:"_id"`
	Position     string    `json:"position"`
	Company      string    `json:"company"`
	WorkLocation string    `json:"workLocation"`
	WorkType     string    `json:"workType"`
	Status       string    `json:"status"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}
