package model

import "time"

// Post 帖子（商品），由发帖子系统维护，购物车只读
type Post struct {
	ID            int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID      int64        `json:"author_id" gorm:"index:idx_post_author;not null"`
	Author        *User        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	SubCategoryID int64        `json:"sub_category_id" gorm:"index;not null"`
	SubCategory   *SubCategory `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`
	Title         string       `json:"title" gorm:"type:varchar(255);not null"`
	PostMileage   int64        `json:"post_mileage" gorm:"not null;default:0"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
