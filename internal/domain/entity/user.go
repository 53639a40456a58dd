package entity

import (
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

type UserRole string

const (
	RoleCreator  UserRole = "creator"
	RoleConsumer UserRole = "consumer"
	RoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive              UserStatus = "active"
	UserStatusInactive            UserStatus = "inactive"
	UserStatusSuspended           UserStatus = "suspended"
	UserStatusPendingVerification UserStatus = "pending_verification"
)

type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	FirstName string
	LastName  string
	Role      UserRole
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new user entity awaiting verification
func NewUser(email, username string, role UserRole) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		Role:      role,
		Status:    UserStatusPendingVerification,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ParseUserRole validates a role string
func ParseUserRole(role string) (UserRole, error) {
	r := UserRole(role)
	switch r {
	case RoleCreator, RoleConsumer, RoleAdmin:
		return r, nil
	default:
		return "", domainErrors.ErrInvalidRole
	}
}

// IsActive returns true if the account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanTransact returns true if the user may be granted new access or charged
func (u *User) CanTransact() bool {
	return u.IsActive()
}

// IsCreator returns true if the user has the creator role
func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
