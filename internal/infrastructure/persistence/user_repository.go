package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/identity"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository is the GORM implementation of the user repository
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save persists a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByIDForTenant returns a user by ID within a tenant
func (r *GormUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	err := r.db.WithContext(ctx).
		First(&user, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmailForTenant returns a user by email within a tenant
func (r *GormUserRepository) FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	var user identity.User
	err := r.db.WithContext(ctx).
		First(&user, "tenant_id = ? AND email = ?", tenantID, email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email across all tenants
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailForTenant reports whether a user with the email exists in the tenant
func (r *GormUserRepository) ExistsByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("tenant_id = ? AND email = ?", tenantID, email).Count(&count).Error
	return count > 0, err
}

// ListForTenant returns the tenant's users matching the filter
func (r *GormUserRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.User{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*identity.User
	err := applyPaging(query, filter).Find(&users).Error
	return users, total, err
}
