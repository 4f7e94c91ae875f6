package controllers

import (
	"context"

	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/serializers"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"

	"github.com/gin-gonic/gin"
)

// FlightIDParam 航班ID的路径参数名，嵌套的费用路由共用该参数
const FlightIDParam = "flight_id"

// HandleFlightFunc 返回处理航班请求的函数
func HandleFlightFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Flight]{
		root:      "flight",
		idParam:   FlightIDParam,
		service:   container.GetService("flight").(*services.FlightService),
		render:    func(f *models.Flight) any { return serializers.NewFlight(f) },
		renderAll: func(items []models.Flight) any { return serializers.NewFlights(items) },
	}, method)
}

// HandleFlightExpenseFunc 返回处理航班费用请求的函数，路径为 /flights/:flight_id/flight_expenses
func HandleFlightExpenseFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	flights := container.GetService("flight").(*services.FlightService)

	return handleResource(resourceConfig[models.FlightExpense]{
		root:      "flight_expense",
		service:   container.GetService("flight_expense").(*services.FlightExpenseService),
		render:    func(e *models.FlightExpense) any { return serializers.NewFlightExpense(e) },
		renderAll: func(items []models.FlightExpense) any { return serializers.NewFlightExpenses(items) },
		parent: &parentResource{
			param:      FlightIDParam,
			foreignKey: "flight_id",
			name:       flights.Name(),
			find: func(ctx context.Context, id uint) error {
				_, err := flights.Find(ctx, id)
				return err
			},
		},
	}, method)
}
