package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mileage-cart/internal/model"
)

// TradeRepository 里程交易记录，购物车只用来判断是否已购买
type TradeRepository interface {
	Exists(ctx context.Context, buyerID, postID int64) (bool, error)
	Create(ctx context.Context, trade *model.MileageTrade) error
}

type tradeRepository struct{ db *gorm.DB }

func NewTradeRepository(db *gorm.DB) TradeRepository { return &tradeRepository{db: db} }

func (r *tradeRepository) Exists(ctx context.Context, buyerID, postID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.MileageTrade{}).
		Where("buyer_id = ? AND post_id = ?", buyerID, postID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *tradeRepository) Create(ctx context.Context, trade *model.MileageTrade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}
