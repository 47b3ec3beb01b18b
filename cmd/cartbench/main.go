package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/mileage-cart/config"
	"github.com/d60-Lab/mileage-cart/internal/cache"
	"github.com/d60-Lab/mileage-cart/internal/model"
	"github.com/d60-Lab/mileage-cart/internal/repository"
	"github.com/d60-Lab/mileage-cart/internal/service"
	"github.com/d60-Lab/mileage-cart/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// 压测：CONC 个 worker 并发把同一批帖子加入购物车（每个帖子 DUP 次），
// 统计延迟以及被唯一索引拦下的重复请求，最后测切换和查询
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	N := envInt("N", 2000)
	CONC := envInt("CONC", 8)
	DUP := envInt("DUP", 3)

	// 清表，保证每次结果可复现（仅本地）
	for _, m := range []any{&model.CartEntry{}, &model.MileageTrade{}, &model.Post{}, &model.SubCategory{}, &model.User{}} {
		_ = db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error
	}

	buyer := model.User{ID: 1, Nickname: "bench-buyer", Email: "buyer@bench.local", Password: "p"}
	seller := model.User{ID: 2, Nickname: "bench-seller", Email: "seller@bench.local", Password: "p"}
	_ = db.Create(&[]model.User{buyer, seller}).Error
	_ = db.Create(&model.SubCategory{ID: 1, Name: "bench"}).Error
	posts := make([]model.Post, N)
	for i := range posts {
		posts[i] = model.Post{ID: int64(i + 1), AuthorID: seller.ID, SubCategoryID: 1, Title: fmt.Sprintf("bench %d", i+1), PostMileage: int64(i%50 + 1)}
	}
	_ = db.CreateInBatches(&posts, 1000).Error

	cartRepo := repository.NewCartRepository(db)
	svc := service.NewCartService(cartRepo, repository.NewPostRepository(db), repository.NewTradeRepository(db), cache.NopCartTotalCache{})
	ctx := context.Background()

	// 每个帖子投递 DUP 次
	feed := make(chan int64, N*DUP)
	for d := 0; d < DUP; d++ {
		for i := 0; i < N; i++ {
			feed <- int64(i + 1)
		}
	}
	close(feed)

	var created, dup, failed atomic.Int64
	latCh := make(chan time.Duration, N*DUP)
	done := make(chan struct{}, CONC)
	t0 := time.Now()
	for w := 0; w < CONC; w++ {
		go func() {
			for pid := range feed {
				st := time.Now()
				_, err := svc.AddItem(ctx, buyer.ID, pid)
				latCh <- time.Since(st)
				switch {
				case err == nil:
					created.Add(1)
				case errors.Is(err, service.ErrDuplicateItem):
					dup.Add(1)
				default:
					failed.Add(1)
				}
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < CONC; w++ {
		<-done
	}
	addDur := time.Since(t0)
	close(latCh)
	addRecs := make([]time.Duration, 0, N*DUP)
	for d := range latCh {
		addRecs = append(addRecs, d)
	}

	// 切换前 100 条
	summary := must(svc.GetCart(ctx, buyer.ID))
	toggleRecs := make([]time.Duration, 0, 100)
	for i, it := range summary.CartItems {
		if i >= 100 {
			break
		}
		st := time.Now()
		_, _ = svc.ToggleActive(ctx, it.ID, buyer.ID)
		toggleRecs = append(toggleRecs, time.Since(st))
	}

	q0 := time.Now()
	summary = must(svc.GetCart(ctx, buyer.ID))
	queryDur := time.Since(q0)

	fmt.Printf("N=%d, CONC=%d, DUP=%d, driver=%s\n", N, CONC, DUP, cfg.Database.Driver)
	fmt.Printf("AddItem total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		addDur, addDur/time.Duration(len(addRecs)), pct(addRecs, 0.50), pct(addRecs, 0.95), pct(addRecs, 0.99))
	fmt.Printf("AddItem outcome: created=%d duplicate=%d failed=%d (expect created=%d)\n", created.Load(), dup.Load(), failed.Load(), N)
	fmt.Printf("ToggleActive p50: %v, p95: %v\n", pct(toggleRecs, 0.50), pct(toggleRecs, 0.95))
	fmt.Printf("GetCart(%d items) latency: %v, totalMileage=%d\n", len(summary.CartItems), queryDur, summary.TotalMileage)
}
