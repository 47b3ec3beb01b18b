package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mileage-cart/internal/service"
	"github.com/d60-Lab/mileage-cart/pkg/response"
)

type userQuery struct {
	UserID string `form:"userId" validate:"required,number"`
}

type addItemQuery struct {
	UserID string `form:"userId" validate:"required,number"`
	PostID string `form:"postId" validate:"required,number"`
}

type toggleQuery struct {
	ItemID string `form:"itemId" validate:"required,number"`
	UserID string `form:"userId" validate:"required,number"`
}

// bindQuery 绑定并校验 query 参数，失败时已写入 400
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BadRequest(c, err.Error())
		return false
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(c, validationMessage(err))
		return false
	}
	return true
}

// bindUserID 只需要 userId 的接口
func bindUserID(c *gin.Context) (int64, bool) {
	var q userQuery
	if !bindQuery(c, &q) {
		return 0, false
	}
	userID, err := parseID("userId", q.UserID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return 0, false
	}
	return userID, true
}

// writeCartError 业务错误 → HTTP 状态
func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrSelfPurchase),
		errors.Is(err, service.ErrDuplicateItem),
		errors.Is(err, service.ErrAlreadyPurchased):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrNoActiveItems):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// GetCartItems 查询购物车
// @Summary 查询购物车条目与激活总里程
// @Tags 购物车
// @Produce json
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response{data=service.CartSummary}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/carts [get]
func (h *Handler) GetCartItems(c *gin.Context) {
	userID, ok := bindUserID(c)
	if !ok {
		return
	}
	summary, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 加入购物车
// @Summary 加入购物车（本人帖子、重复、已购买均拒绝）
// @Tags 购物车
// @Produce json
// @Param userId query int true "用户ID"
// @Param postId query int true "帖子ID"
// @Success 201 {object} response.Response{data=model.CartEntry}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/carts [post]
func (h *Handler) AddCartItem(c *gin.Context) {
	var q addItemQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, err := parseID("userId", q.UserID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	postID, err := parseID("postId", q.PostID)
	if err != nil {
		writeCartError(c, err)
		return
	}

	entry, err := h.cartService.AddItem(c.Request.Context(), userID, postID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	response.Created(c, entry)
}

// DeleteActiveItems 删除激活条目
// @Summary 删除购物车中所有激活条目
// @Tags 购物车
// @Produce json
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/carts/active [delete]
func (h *Handler) DeleteActiveItems(c *gin.Context) {
	userID, ok := bindUserID(c)
	if !ok {
		return
	}
	n, err := h.cartService.DeleteActiveItems(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": n})
}

// ClearCart 清空购物车
// @Summary 清空购物车（空购物车也返回成功）
// @Tags 购物车
// @Produce json
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/carts [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := bindUserID(c)
	if !ok {
		return
	}
	n, err := h.cartService.ClearCart(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": n})
}

// ToggleActive 切换条目激活状态
// @Summary 切换购物车条目激活状态并返回最新总里程
// @Tags 购物车
// @Produce json
// @Param itemId path int true "购物车条目ID"
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response{data=service.ToggleResult}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/carts/items/{itemId}/active [patch]
func (h *Handler) ToggleActive(c *gin.Context) {
	var q toggleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	// 路径参数优先，兼容 ?itemId= 的旧调用方式
	if p := c.Param("itemId"); p != "" {
		q.ItemID = p
	}
	if err := validate.Struct(&q); err != nil {
		response.BadRequest(c, validationMessage(err))
		return
	}
	itemID, err := parseID("itemId", q.ItemID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	userID, err := parseID("userId", q.UserID)
	if err != nil {
		writeCartError(c, err)
		return
	}

	res, err := h.cartService.ToggleActive(c.Request.Context(), itemID, userID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	msg := "cart item deactivated"
	if res.IsActive {
		msg = "cart item activated"
	}
	response.SuccessWithMessage(c, msg, res)
}

// GetTotalMileage 查询激活总里程
// @Summary 查询购物车激活条目总里程（带缓存）
// @Tags 购物车
// @Produce json
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/carts/total [get]
func (h *Handler) GetTotalMileage(c *gin.Context) {
	userID, ok := bindUserID(c)
	if !ok {
		return
	}
	total, err := h.cartService.TotalMileage(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}
	response.Success(c, gin.H{"totalMileage": total})
}
