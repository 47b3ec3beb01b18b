package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mileage-cart/pkg/response"
)

// Health 健康检查
// @Summary 健康检查（数据库 / Redis）
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{}
	healthy := true
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			status[chk.Name] = err.Error()
			healthy = false
			continue
		}
		status[chk.Name] = "ok"
	}
	if !healthy {
		response.ServiceUnavailable(c, "unhealthy", status)
		return
	}
	response.Success(c, gin.H{"status": "ok", "checks": status})
}
