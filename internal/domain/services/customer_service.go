package services

import (
	"logistics-http-service/internal/domain/filter"
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"

	"gorm.io/gorm"
)

// CustomerService 客户服务，editor_id 由控制器从令牌中填入
type CustomerService struct {
	*Resource[models.Customer]
}

// NewCustomerService 创建一个新的客户服务
func NewCustomerService(db *gorm.DB) *CustomerService {
	def := Definition[models.Customer]{
		Name:      "customer",
		Permitted: []string{"name", "phone"},
		Filters:   filter.Of(filter.Integer, "editor_id").With(filter.Of(filter.String, "name", "phone")),
		Rules:     contactRules("customers"),
		Unique:    []string{"phone"},
		Attributes: func(c *models.Customer) validation.Attributes {
			return validation.Attributes{"name": c.Name, "phone": c.Phone, "editor_id": c.EditorID}
		},
		Assign: func(c *models.Customer, a validation.Attributes) error {
			c.Name = a.String("name")
			c.Phone = a.String("phone")
			c.EditorID = uintOf(a, "editor_id")
			return nil
		},
		Dependents: []Dependent{
			{Name: "shipments", Table: "shipments", ForeignKey: "customer_id", Policy: Restrict},
			{Name: "orders", Table: "orders", ForeignKey: "customer_id", Policy: Restrict},
		},
	}
	return &CustomerService{Resource: NewResource(db, def)}
}

// TravelerService 旅客服务
type TravelerService struct {
	*Resource[models.Traveler]
}

// NewTravelerService 创建一个新的旅客服务
func NewTravelerService(db *gorm.DB) *TravelerService {
	def := Definition[models.Traveler]{
		Name:      "traveler",
		Permitted: []string{"name", "phone"},
		Filters:   filter.Of(filter.Integer, "editor_id").With(filter.Of(filter.String, "name", "phone")),
		Rules:     contactRules("travelers"),
		Unique:    []string{"phone"},
		Attributes: func(t *models.Traveler) validation.Attributes {
			return validation.Attributes{"name": t.Name, "phone": t.Phone, "editor_id": t.EditorID}
		},
		Assign: func(t *models.Traveler, a validation.Attributes) error {
			t.Name = a.String("name")
			t.Phone = a.String("phone")
			t.EditorID = uintOf(a, "editor_id")
			return nil
		},
		Dependents: []Dependent{
			{Name: "flights", Table: "flights", ForeignKey: "traveler_id", Policy: Restrict},
		},
	}
	return &TravelerService{Resource: NewResource(db, def)}
}

// contactRules 客户和旅客共用的规则：姓名、唯一的10位电话、所属 Editor
func contactRules(table string) []validation.Rule {
	return []validation.Rule{
		validation.Presence("name", "phone"),
		validation.Uniqueness("phone", table),
		validation.Format("phone", validation.PhonePattern, validation.MsgInvalidPhone),
		validation.BelongsTo("editor", "editor_id", "editors"),
	}
}

func uintOf(a validation.Attributes, key string) uint {
	id, _ := a.Uint(key)
	return id
}
