package services

import (
	"logistics-http-service/internal/domain/filter"
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"

	"gorm.io/gorm"
)

// ShipmentService 货运服务，删除货运时级联删除其货物内容
type ShipmentService struct {
	*Resource[models.Shipment]
}

// NewShipmentService 创建一个新的货运服务
func NewShipmentService(db *gorm.DB) *ShipmentService {
	def := Definition[models.Shipment]{
		Name:      "shipment",
		Permitted: []string{"status", "customer_id", "direction", "total", "flight_id"},
		Filters: filter.Of(filter.Integer, "editor_id", "customer_id", "total", "flight_id").
			With(filter.Of(filter.String, "status", "direction")),
		Rules: []validation.Rule{
			validation.Presence("direction", "total"),
			validation.AllowBlank("total", validation.Numericality("total", validation.OnlyInteger())),
			validation.AllowBlank("status", validation.Inclusion("status", models.ShipmentStatuses)),
			validation.BelongsTo("customer", "customer_id", "customers"),
			validation.BelongsTo("editor", "editor_id", "editors"),
			validation.BelongsTo("flight", "flight_id", "flights"),
		},
		Attributes: func(s *models.Shipment) validation.Attributes {
			return validation.Attributes{
				"direction":   s.Direction,
				"total":       s.Total,
				"status":      s.Status,
				"customer_id": s.CustomerID,
				"editor_id":   s.EditorID,
				"flight_id":   s.FlightID,
			}
		},
		Assign: func(s *models.Shipment, a validation.Attributes) error {
			s.Direction = a.String("direction")
			s.Total = a.Int("total")
			s.Status = nil
			if !a.Blank("status") {
				status := a.String("status")
				s.Status = &status
			}
			s.CustomerID = uintOf(a, "customer_id")
			s.EditorID = uintOf(a, "editor_id")
			s.FlightID = uintOf(a, "flight_id")
			return nil
		},
		Dependents: []Dependent{
			{Name: "contents", Table: "contents", ForeignKey: "shipment_id", Policy: Cascade},
		},
	}
	return &ShipmentService{Resource: NewResource(db, def)}
}

// ContentService 货物内容服务，只能在货运之下访问
type ContentService struct {
	*Resource[models.Content]
}

// NewContentService 创建一个新的货物内容服务
func NewContentService(db *gorm.DB) *ContentService {
	def := Definition[models.Content]{
		Name:      "content",
		Permitted: []string{"content_type", "weight", "kg_price", "items_number", "shipment_id"},
		Filters: filter.Of(filter.String, "content_type").
			With(filter.Of(filter.Integer, "weight", "items_number", "kg_price", "shipment_id")),
		Rules: []validation.Rule{
			validation.Inclusion("content_type", models.ContentTypes),
			validation.Presence("weight", "items_number", "kg_price"),
			validation.Numericality("weight", validation.OnlyInteger(), validation.GreaterThan(0)),
			validation.Numericality("items_number", validation.OnlyInteger(), validation.GreaterThan(0)),
			validation.Numericality("kg_price", validation.OnlyInteger(), validation.GreaterThan(0)),
			validation.BelongsTo("shipment", "shipment_id", "shipments"),
		},
		Attributes: func(c *models.Content) validation.Attributes {
			return validation.Attributes{
				"content_type": c.ContentType,
				"weight":       c.Weight,
				"items_number": c.ItemsNumber,
				"kg_price":     c.KgPrice,
				"shipment_id":  c.ShipmentID,
			}
		},
		Assign: func(c *models.Content, a validation.Attributes) error {
			c.ContentType = a.String("content_type")
			c.Weight = a.Int("weight")
			c.ItemsNumber = a.Int("items_number")
			c.KgPrice = a.Int("kg_price")
			c.ShipmentID = uintOf(a, "shipment_id")
			return nil
		},
	}
	return &ContentService{Resource: NewResource(db, def)}
}
