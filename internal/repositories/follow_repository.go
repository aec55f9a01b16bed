package repositories

import (
	"github.com/Devepooper/yatube/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, authorID uint) error
	IsFollowing(followerID, authorID uint) (bool, error)
	GetFollowedAuthorIDs(followerID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// DeleteFollow removes the (follower, author) subscription. Removing a
// subscription that does not exist is a no-op.
func (r *PostgresFollowRepository) DeleteFollow(followerID, authorID uint) error {
	return r.db.Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(followerID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowedAuthorIDs returns the IDs of every author the user follows.
func (r *PostgresFollowRepository) GetFollowedAuthorIDs(followerID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("author_id", &ids).Error
	return ids, err
}
