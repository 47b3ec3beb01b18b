package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mileage-cart/internal/model"
)

// PostRepository 帖子只读仓储
type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Post, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}
