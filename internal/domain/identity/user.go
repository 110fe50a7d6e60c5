package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User is an account belonging to a company. Authentication carries no role
// model: any active user of a company may call every tenant endpoint.
type User struct {
	shared.TenantAggregateRoot
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_tenant_email,priority:2"`
	Name         string     `gorm:"type:varchar(100);not null"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user for a company. The password hash is produced by the
// auth layer; the domain only stores it.
func NewUser(tenantID uuid.UUID, email, name, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot exceed 100 characters")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		Name:                name,
		PasswordHash:        passwordHash,
		Status:              UserStatusActive,
	}, nil
}

// Rename updates the user's display name
func (u *User) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "User name cannot exceed 100 characters")
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Disable disables the user account
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "User is already disabled")
	}
	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Enable reactivates a disabled user account
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsActive returns true if the user may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
