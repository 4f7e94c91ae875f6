package controllers

import (
	"context"

	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/serializers"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"

	"github.com/gin-gonic/gin"
)

// ShipmentIDParam 货运ID的路径参数名，嵌套的内容路由共用该参数
const ShipmentIDParam = "shipment_id"

// HandleShipmentFunc 返回处理货运请求的函数，新货运由当前 Editor 登记
func HandleShipmentFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Shipment]{
		root:      "shipment",
		idParam:   ShipmentIDParam,
		service:   container.GetService("shipment").(*services.ShipmentService),
		render:    func(s *models.Shipment) any { return serializers.NewShipment(s) },
		renderAll: func(items []models.Shipment) any { return serializers.NewShipments(items) },
		stamp:     stampEditor,
	}, method)
}

// HandleContentFunc 返回处理货物内容请求的函数，路径为 /shipments/:shipment_id/contents
func HandleContentFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	shipments := container.GetService("shipment").(*services.ShipmentService)

	return handleResource(resourceConfig[models.Content]{
		root:      "content",
		service:   container.GetService("content").(*services.ContentService),
		render:    func(c *models.Content) any { return serializers.NewContent(c) },
		renderAll: func(items []models.Content) any { return serializers.NewContents(items) },
		parent: &parentResource{
			param:      ShipmentIDParam,
			foreignKey: "shipment_id",
			name:       shipments.Name(),
			find: func(ctx context.Context, id uint) error {
				_, err := shipments.Find(ctx, id)
				return err
			},
		},
	}, method)
}
