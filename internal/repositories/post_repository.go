package repositories

import (
	"github.com/Devepooper/yatube/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing to one feed. Zero value selects the
// global index feed.
type PostFilter struct {
	GroupID   uint   // posts filed under one group
	AuthorID  uint   // posts by one author
	AuthorIDs []uint // posts by any of these authors (follow feed)
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	ListPosts(filter PostFilter, offset, limit int) ([]models.Post, error)
	CountPosts(filter PostFilter) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost persists changed columns of an existing post. Author and
// creation timestamp are never touched.
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(post).Updates(map[string]interface{}{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image":    post.Image,
	}).Error
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) applyFilter(filter PostFilter) *gorm.DB {
	query := r.db.Model(&models.Post{})
	if filter.GroupID != 0 {
		query = query.Where("group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.AuthorIDs != nil {
		query = query.Where("author_id IN ?", filter.AuthorIDs)
	}
	return query
}

// ListPosts returns one page of a feed, newest first.
func (r *PostgresPostRepository) ListPosts(filter PostFilter, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyFilter(filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPosts(filter PostFilter) (int64, error) {
	var count int64
	err := r.applyFilter(filter).Count(&count).Error
	return count, err
}
