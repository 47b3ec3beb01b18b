package model

import "time"

// MileageTrade 已完成的里程交易，(buyer_id, post_id) 唯一
type MileageTrade struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BuyerID   int64     `json:"buyer_id" gorm:"not null;uniqueIndex:ux_trade_buyer_post"`
	SellerID  int64     `json:"seller_id" gorm:"not null;index"`
	PostID    int64     `json:"post_id" gorm:"not null;uniqueIndex:ux_trade_buyer_post"`
	CreatedAt time.Time `json:"created_at"`
}

func (MileageTrade) TableName() string { return "mileage_trades" }
