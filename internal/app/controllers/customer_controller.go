package controllers

import (
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/serializers"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"

	"github.com/gin-gonic/gin"
)

// HandleCustomerFunc 返回处理客户请求的函数，新客户归属于当前 Editor
func HandleCustomerFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Customer]{
		root:      "customer",
		service:   container.GetService("customer").(*services.CustomerService),
		render:    func(c *models.Customer) any { return serializers.NewCustomer(c) },
		renderAll: func(items []models.Customer) any { return serializers.NewCustomers(items) },
		stamp:     stampEditor,
	}, method)
}

// HandleTravelerFunc 返回处理旅客请求的函数
func HandleTravelerFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Traveler]{
		root:      "traveler",
		service:   container.GetService("traveler").(*services.TravelerService),
		render:    func(t *models.Traveler) any { return serializers.NewTraveler(t) },
		renderAll: func(items []models.Traveler) any { return serializers.NewTravelers(items) },
		stamp:     stampEditor,
	}, method)
}
