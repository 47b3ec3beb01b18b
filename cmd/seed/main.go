package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/mileage-cart/config"
	"github.com/d60-Lab/mileage-cart/internal/model"
	"github.com/d60-Lab/mileage-cart/internal/repository"
	"github.com/d60-Lab/mileage-cart/pkg/database"
	"github.com/d60-Lab/mileage-cart/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var majors = []string{"Computer Science", "Design", "Mathematics", "Economics", "Biology"}
var subCategories = []string{"books", "electronics", "clothing", "furniture", "tickets"}

// 本地演示数据：USERS 个用户，每人 POSTS_PER_USER 个帖子，u1 买过 u2 的第一个帖子
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, "console"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := must(database.InitDB(cfg))
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	USERS := envInt("USERS", 20)
	POSTS := envInt("POSTS_PER_USER", 5)
	ctx := context.Background()

	hash := must(bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost))

	cats := make([]model.SubCategory, len(subCategories))
	for i, name := range subCategories {
		cats[i] = model.SubCategory{ID: int64(i + 1), Name: name}
	}
	upsert(db, &cats)

	users := make([]model.User, USERS)
	for i := range users {
		uid := int64(i + 1)
		users[i] = model.User{
			ID:       uid,
			Nickname: fmt.Sprintf("user%03d", uid),
			Major:    majors[i%len(majors)],
			Email:    fmt.Sprintf("user%03d@example.com", uid),
			Password: string(hash),
		}
	}
	upsert(db, &users)

	posts := make([]model.Post, 0, USERS*POSTS)
	for i := 0; i < USERS; i++ {
		for j := 0; j < POSTS; j++ {
			pid := int64(i*POSTS + j + 1)
			posts = append(posts, model.Post{
				ID:            pid,
				AuthorID:      int64(i + 1),
				SubCategoryID: cats[int(pid)%len(cats)].ID,
				Title:         fmt.Sprintf("item #%d", pid),
				PostMileage:   int64(10 * (j + 1)),
			})
		}
	}
	upsert(db, &posts)

	if USERS >= 2 && POSTS >= 1 {
		trades := repository.NewTradeRepository(db)
		sold := posts[POSTS] // u2 的第一个帖子
		if ok, err := trades.Exists(ctx, 1, sold.ID); err == nil && !ok {
			if err := trades.Create(ctx, &model.MileageTrade{BuyerID: 1, SellerID: sold.AuthorID, PostID: sold.ID}); err != nil {
				logger.Warn("seed trade", zap.Error(err))
			}
		}
	}

	logger.Info("seed done", zap.Int("users", len(users)), zap.Int("posts", len(posts)), zap.Int("sub_categories", len(cats)))
}

func upsert[T any](db *gorm.DB, rows *[]T) {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500).Error; err != nil {
		logger.Fatal("seed", zap.Error(err))
	}
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}
