package controllers

import (
	"context"
	"errors"

	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/serializers"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"
	"logistics-http-service/internal/domain/validation"

	"github.com/gin-gonic/gin"
)

// HandleProductFunc 返回处理商品请求的函数
func HandleProductFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Product]{
		root:      "product",
		service:   container.GetService("product").(*services.ProductService),
		render:    func(p *models.Product) any { return serializers.NewProduct(p) },
		renderAll: func(items []models.Product) any { return serializers.NewProducts(items) },
	}, method)
}

// HandleOrderFunc 返回处理订单请求的函数
func HandleOrderFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Order]{
		root:      "order",
		service:   container.GetService("order").(*services.OrderService),
		render:    func(o *models.Order) any { return serializers.NewOrder(o) },
		renderAll: func(items []models.Order) any { return serializers.NewOrders(items) },
	}, method)
}

// HandleOrderProductFunc 返回处理订单行请求的函数，写入前先检查商品库存
func HandleOrderProductFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	lines := container.GetService("order_product").(*services.OrderProductService)

	return handleResource(resourceConfig[models.OrderProduct]{
		root:      "order_product",
		service:   lines,
		render:    func(op *models.OrderProduct) any { return serializers.NewOrderProduct(op) },
		renderAll: func(items []models.OrderProduct) any { return serializers.NewOrderProducts(items) },
		beforeSave: func(ctx context.Context, existing *models.OrderProduct, params validation.Attributes) error {
			product, err := lines.ResolveProduct(ctx, existing, params)
			if errors.Is(err, services.ErrRecordNotFound) {
				return &notFoundError{resource: "product"}
			}
			if err != nil {
				return err
			}
			return lines.CheckStock(product, params)
		},
	}, method)
}
