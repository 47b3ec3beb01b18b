package model

import "time"

// User 用户（仅购物车所需字段，资料维护属于用户子系统）
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Nickname  string    `json:"nickname" gorm:"type:varchar(32);uniqueIndex;not null"`
	Major     string    `json:"major" gorm:"type:varchar(64)"`
	Email     string    `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
