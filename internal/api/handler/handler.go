package handler

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/mileage-cart/internal/service"
)

// HealthCheck 健康检查依赖项
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Handler HTTP 处理器
type Handler struct {
	cartService service.CartService
	checks      []HealthCheck
}

func NewHandler(cartService service.CartService, checks ...HealthCheck) *Handler {
	return &Handler{cartService: cartService, checks: checks}
}

// validate 使用 form 标签名输出字段，错误信息与请求参数一致
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}()

// validationMessage 把 validator 错误转换成对外提示
func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "number":
			msgs = append(msgs, fmt.Sprintf("%s must be a number", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

// parseID 已通过 number 校验的字符串转 int64，溢出时返回 ErrInvalidID
func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", service.ErrInvalidID, name)
	}
	return id, nil
}
