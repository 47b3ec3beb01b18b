package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/mileage-cart/internal/cache"
	"github.com/d60-Lab/mileage-cart/internal/model"
	"github.com/d60-Lab/mileage-cart/internal/repository"
	"github.com/d60-Lab/mileage-cart/pkg/logger"
)

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrPostNotFound     = errors.New("post not found")
	ErrSelfPurchase     = errors.New("cannot add own post to cart")
	ErrDuplicateItem    = errors.New("post is already in cart")
	ErrAlreadyPurchased = errors.New("post has already been purchased")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNotOwner         = errors.New("cart item belongs to another user")
	ErrNoActiveItems    = errors.New("no active cart items")
)

// CartSummary 购物车列表 + 激活条目总里程
type CartSummary struct {
	CartItems    []*model.CartItemView `json:"cartItems"`
	TotalMileage int64                 `json:"totalMileage"`
}

// ToggleResult 切换后的状态与重新计算的总里程
type ToggleResult struct {
	ItemID       int64 `json:"itemId"`
	IsActive     bool  `json:"isActive"`
	TotalMileage int64 `json:"totalMileage"`
}

// CartService 购物车服务
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*CartSummary, error)
	AddItem(ctx context.Context, userID, postID int64) (*model.CartEntry, error)
	DeleteActiveItems(ctx context.Context, userID int64) (int64, error)
	ClearCart(ctx context.Context, userID int64) (int64, error)
	ToggleActive(ctx context.Context, itemID, userID int64) (*ToggleResult, error)
	TotalMileage(ctx context.Context, userID int64) (int64, error)
}

type cartService struct {
	cartRepo  repository.CartRepository
	postRepo  repository.PostRepository
	tradeRepo repository.TradeRepository
	totals    cache.CartTotalCache
}

func NewCartService(cartRepo repository.CartRepository, postRepo repository.PostRepository, tradeRepo repository.TradeRepository, totals cache.CartTotalCache) CartService {
	if totals == nil {
		totals = cache.NopCartTotalCache{}
	}
	return &cartService{cartRepo: cartRepo, postRepo: postRepo, tradeRepo: tradeRepo, totals: totals}
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	var total int64
	for _, it := range items {
		if it.IsActive {
			total += it.PostMileage
		}
	}
	return &CartSummary{CartItems: items, TotalMileage: total}, nil
}

// AddItem 规则按顺序检查：帖子存在、非本人帖子、无重复激活条目、未购买过
func (s *cartService) AddItem(ctx context.Context, userID, postID int64) (*model.CartEntry, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post.AuthorID == userID {
		return nil, ErrSelfPurchase
	}

	exists, err := s.cartRepo.ExistsActive(ctx, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("check cart item: %w", err)
	}
	if exists {
		return nil, ErrDuplicateItem
	}

	purchased, err := s.tradeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("check trade: %w", err)
	}
	if purchased {
		return nil, ErrAlreadyPurchased
	}

	entry := &model.CartEntry{UserID: userID, PostID: postID, IsActive: true, Quantity: 1}
	inserted, err := s.cartRepo.CreateActive(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create cart item: %w", err)
	}
	if !inserted {
		// 预检查之后被并发请求抢先插入
		return nil, ErrDuplicateItem
	}
	s.totals.Invalidate(ctx, userID)

	logger.Debug("cart item added", zap.Int64("user_id", userID), zap.Int64("post_id", postID), zap.Int64("item_id", entry.ID))
	return entry, nil
}

func (s *cartService) DeleteActiveItems(ctx context.Context, userID int64) (int64, error) {
	n, err := s.cartRepo.DeleteActive(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete active items: %w", err)
	}
	if n == 0 {
		return 0, ErrNoActiveItems
	}
	s.totals.Invalidate(ctx, userID)
	return n, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID int64) (int64, error) {
	n, err := s.cartRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	s.totals.Invalidate(ctx, userID)
	return n, nil
}

func (s *cartService) ToggleActive(ctx context.Context, itemID, userID int64) (*ToggleResult, error) {
	entry, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrNotOwner
	}

	next := !entry.IsActive
	if next {
		// 当前条目是失活的，存在的激活条目必然是另一条
		exists, err := s.cartRepo.ExistsActive(ctx, userID, entry.PostID)
		if err != nil {
			return nil, fmt.Errorf("check cart item: %w", err)
		}
		if exists {
			return nil, ErrDuplicateItem
		}
	}
	if err := s.cartRepo.SetActive(ctx, itemID, next); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateItem
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	s.totals.Invalidate(ctx, userID)

	total, err := s.cartRepo.ActiveTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("sum active mileage: %w", err)
	}
	return &ToggleResult{ItemID: itemID, IsActive: next, TotalMileage: total}, nil
}

// TotalMileage 优先读缓存，未命中时回源并回填。
// 只有这里写缓存，各写操作只负责删除 key
func (s *cartService) TotalMileage(ctx context.Context, userID int64) (int64, error) {
	if total, ok := s.totals.Get(ctx, userID); ok {
		return total, nil
	}
	total, err := s.cartRepo.ActiveTotal(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("sum active mileage: %w", err)
	}
	s.totals.Set(ctx, userID, total)
	return total, nil
}
