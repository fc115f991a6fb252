package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// IsValid reports whether the status is known
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

var (
	userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,100}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

const minPasswordLength = 8

// User is an account that belongs to a tenant and holds exactly one role.
type User struct {
	shared.TenantAggregateRoot
	Name          string
	UserName      string
	Email         string
	PasswordHash  string
	RoleID        uuid.UUID
	WarehouseID   *uuid.UUID
	ManagedShopID *uuid.UUID
	Status        UserStatus
	LastLoginAt   *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(tenantID, roleID uuid.UUID, name, userName, email, password string) (*User, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant is required")
	}
	if roleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role is required")
	}
	userName, err := normalizeUserName(userName)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		UserName:            userName,
		Email:               email,
		PasswordHash:        hash,
		RoleID:              roleID,
		Status:              UserStatusActive,
	}, nil
}

// Rename updates the display name
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Name cannot exceed 200 characters")
	}
	u.Name = name
	u.touch()
	return nil
}

// SetUserName validates and sets the login name
func (u *User) SetUserName(userName string) error {
	normalized, err := normalizeUserName(userName)
	if err != nil {
		return err
	}
	u.UserName = normalized
	u.touch()
	return nil
}

// SetEmail validates and sets the email address
func (u *User) SetEmail(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	u.Email = normalized
	u.touch()
	return nil
}

// AssignRole replaces the user's role
func (u *User) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Role is required")
	}
	u.RoleID = roleID
	u.touch()
	return nil
}

// AssignWarehouse sets or clears the user's home warehouse
func (u *User) AssignWarehouse(warehouseID *uuid.UUID) {
	u.WarehouseID = warehouseID
	u.touch()
}

// AssignManagedShop sets or clears the shop a shop manager runs
func (u *User) AssignManagedShop(shopID *uuid.UUID) {
	u.ManagedShopID = shopID
	u.touch()
}

// SetStatus switches the account between active and inactive
func (u *User) SetStatus(status UserStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Status must be active or inactive")
	}
	u.Status = status
	u.touch()
	return nil
}

// ChangePassword replaces the password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful sign-in
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.touch()
}

// IsActive returns true if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Manages reports whether the user is the designated manager of shopID
func (u *User) Manages(shopID uuid.UUID) bool {
	return u.ManagedShopID != nil && *u.ManagedShopID == shopID
}

func (u *User) touch() {
	u.Bump()
}

func normalizeUserName(userName string) (string, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return "", shared.NewDomainError("INVALID_USER_NAME", "User name cannot be empty")
	}
	if !userNamePattern.MatchString(userName) {
		return "", shared.NewDomainError("INVALID_USER_NAME",
			"User name must be 3-100 characters of letters, digits, '_', '.' or '-'")
	}
	return strings.ToLower(userName), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email address is invalid")
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", shared.WrapDomainError("INTERNAL_ERROR", "Failed to hash password", err)
	}
	return string(hash), nil
}
