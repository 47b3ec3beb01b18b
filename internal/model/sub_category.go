package model

// SubCategory 商品小分类
type SubCategory struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(64);not null"`
}

func (SubCategory) TableName() string { return "sub_categories" }
