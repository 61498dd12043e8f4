package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/models"
)

// RoleRepository provides access to user role assignments
type RoleRepository struct {
	db         *gorm.DB
	readOnlyDB *gorm.DB
}

// NewRoleRepository creates a new repository
func NewRoleRepository(db *gorm.DB, readOnlyDB *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db, readOnlyDB: readOnlyDB}
}

// GetRole returns the role assigned to a user, or ErrNotFound when there is no record
func (r *RoleRepository) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	var row models.UserRole
	err := r.readOnlyDB.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		return "", translate(err, "failed to get user role")
	}
	return domain.Role(row.Role), nil
}

// SetRole assigns a role to a user, replacing any existing assignment
func (r *RoleRepository) SetRole(ctx context.Context, userID string, role domain.Role) error {
	row := models.UserRole{UserID: userID, Role: string(role)}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&row).Error
	return translate(err, "failed to set user role")
}
