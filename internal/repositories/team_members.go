package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/models"
)

// TeamMemberRepository provides access to advertiser rows
type TeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new repository
func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// ListAll returns every member, newest first. It reads the primary because
// it backs the snapshot refetched after each write.
func (r *TeamMemberRepository) ListAll(ctx context.Context) ([]domain.TeamMember, error) {
	var rows []models.TeamMember
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "failed to list team members")
	}

	out := make([]domain.TeamMember, len(rows))
	for i, row := range rows {
		out[i] = memberFromRow(row)
	}
	return out, nil
}

// GetByID returns a single member
func (r *TeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error) {
	var row models.TeamMember
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return domain.TeamMember{}, translate(err, "failed to get team member")
	}
	return memberFromRow(row), nil
}

// Create inserts a member and fills in its id and timestamps
func (r *TeamMemberRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	row := memberToRow(*m)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "failed to create team member")
	}
	*m = memberFromRow(row)
	return nil
}

// Update writes the given columns of a member
func (r *TeamMemberRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) error {
	res := r.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", id).Updates(map[string]interface{}(fields))
	if res.Error != nil {
		return translate(res.Error, "failed to update team member")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a member
func (r *TeamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.TeamMember{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete team member")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
