package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/mileage-cart/internal/model"
)

// CartRepository 购物车条目仓储
type CartRepository interface {
	// ListByUser 查询用户全部条目（含帖子、作者、分类信息），新加入的在前
	ListByUser(ctx context.Context, userID int64) ([]*model.CartItemView, error)

	// FindByID 查不到时返回 gorm.ErrRecordNotFound
	FindByID(ctx context.Context, id int64) (*model.CartEntry, error)

	// ExistsActive 是否已有该 (user, post) 的激活条目
	ExistsActive(ctx context.Context, userID, postID int64) (bool, error)

	// CreateActive 原子插入激活条目；命中唯一索引时不报错，返回 inserted=false
	CreateActive(ctx context.Context, entry *model.CartEntry) (inserted bool, err error)

	// SetActive 更新激活状态
	SetActive(ctx context.Context, id int64, active bool) error

	// DeleteActive 删除用户所有激活条目，返回删除行数
	DeleteActive(ctx context.Context, userID int64) (int64, error)

	// DeleteAll 清空用户购物车，返回删除行数
	DeleteAll(ctx context.Context, userID int64) (int64, error)

	// ActiveTotal 用户激活条目的 post_mileage 之和
	ActiveTotal(ctx context.Context, userID int64) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]*model.CartItemView, error) {
	rows := make([]*model.CartItemView, 0)
	err := r.db.WithContext(ctx).
		Table("carts").
		Select(
			"carts.id",
			"carts.post_id",
			"carts.is_active",
			"carts.quantity",
			"carts.created_at AS added_at",
			"COALESCE(posts.title, '') AS title",
			"COALESCE(posts.author_id, 0) AS author_id",
			"COALESCE(users.nickname, '') AS author_nickname",
			"COALESCE(users.major, '') AS author_major",
			"posts.created_at AS post_created_at",
			"COALESCE(sub_categories.name, '') AS sub_category_name",
			"COALESCE(posts.post_mileage, 0) AS post_mileage",
		).
		// 帖子被删除的条目仍然列出（里程按 0 计），与删除接口统计的条目一致
		Joins("LEFT JOIN posts ON posts.id = carts.post_id").
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN sub_categories ON sub_categories.id = posts.sub_category_id").
		Where("carts.user_id = ?", userID).
		Order("carts.created_at DESC, carts.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cartRepository) FindByID(ctx context.Context, id int64) (*model.CartEntry, error) {
	var entry model.CartEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *cartRepository) ExistsActive(ctx context.Context, userID, postID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.CartEntry{}).
		Where("user_id = ? AND post_id = ? AND is_active = ?", userID, postID, true).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *cartRepository) CreateActive(ctx context.Context, entry *model.CartEntry) (bool, error) {
	entry.IsActive = true
	if entry.Quantity <= 0 {
		entry.Quantity = 1
	}
	// ux_cart_active_pair 冲突时 DO NOTHING，并发重复加入只会有一条成功
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *cartRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.CartEntry{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *cartRepository) DeleteActive(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Delete(&model.CartEntry{})
	return res.RowsAffected, res.Error
}

func (r *cartRepository) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartEntry{})
	return res.RowsAffected, res.Error
}

func (r *cartRepository) ActiveTotal(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("carts").
		Select("COALESCE(SUM(posts.post_mileage), 0)").
		Joins("JOIN posts ON posts.id = carts.post_id").
		Where("carts.user_id = ? AND carts.is_active = ?", userID, true).
		Scan(&total).Error
	return total, err
}
