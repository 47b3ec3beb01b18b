package model

import "time"

// CartEntry 购物车条目
// 同一 (user_id, post_id) 最多一条 is_active = true 的记录，
// 由部分唯一索引 ux_cart_active_pair 保证
type CartEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"not null;index:idx_cart_user;uniqueIndex:ux_cart_active_pair,where:is_active = true"`
	PostID    int64     `json:"postId" gorm:"not null;uniqueIndex:ux_cart_active_pair,where:is_active = true"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CartEntry) TableName() string { return "carts" }

// CartItemView 购物车列表行：条目 + 帖子/作者/分类信息
type CartItemView struct {
	ID              int64     `json:"id"`
	PostID          int64     `json:"postId"`
	IsActive        bool      `json:"isActive"`
	Quantity        int       `json:"quantity"`
	AddedAt         time.Time `json:"addedAt"`
	Title           string    `json:"title"`
	AuthorID        int64     `json:"authorId"`
	AuthorNickname  string    `json:"authorNickname"`
	AuthorMajor     string    `json:"authorMajor"`
	PostCreatedAt   time.Time `json:"postCreatedAt"`
	SubCategoryName string    `json:"subCategoryName"`
	PostMileage     int64     `json:"postMileage"`
}
