package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/identity"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateUserRequest creates a user within the caller's company
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest renames a user
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ChangePasswordRequest changes the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the outward representation of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ListUsersResponse is a paginated user listing
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// UserService manages users within a company
type UserService struct {
	users  identity.UserRepository
	hasher PasswordHasher
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.UserRepository, hasher PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Create adds a user to the company
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.users.ExistsByEmailForTenant(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(tenantID, req.Email, req.Name, hash)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", tenantID.String()))
	return toUserResponse(user), nil
}

// Get returns a user by ID within the company
func (s *UserService) Get(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List returns the company's users
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*ListUsersResponse, error) {
	users, total, err := s.users.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = *toUserResponse(u)
	}
	return &ListUsersResponse{Users: out, Total: total}, nil
}

// Update renames a user
func (s *UserService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := user.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, tenantID, id uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.PasswordHash, req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

// Disable disables a user account
func (s *UserService) Disable(ctx context.Context, tenantID, id uuid.UUID) error {
	user, err := s.users.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := user.Disable(); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
	}
}
