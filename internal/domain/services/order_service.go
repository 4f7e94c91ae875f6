package services

import (
	"context"
	"errors"

	"logistics-http-service/internal/domain/filter"
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"

	"gorm.io/gorm"
)

// ErrStockExceeded 订单行数量超过商品库存
var ErrStockExceeded = errors.New("quantity exceeds available stock")

// ProductService 商品服务
type ProductService struct {
	*Resource[models.Product]
}

// NewProductService 创建一个新的商品服务
func NewProductService(db *gorm.DB) *ProductService {
	def := Definition[models.Product]{
		Name:      "product",
		Permitted: []string{"product_type", "stock", "price"},
		Filters:   filter.Of(filter.String, "product_type").With(filter.Of(filter.Decimal, "stock", "price")),
		Rules: []validation.Rule{
			validation.Presence("product_type", "stock", "price"),
			validation.Numericality("stock", validation.GreaterThanOrEqualTo(0)),
			validation.Numericality("price", validation.GreaterThanOrEqualTo(0)),
		},
		Attributes: func(p *models.Product) validation.Attributes {
			return validation.Attributes{"product_type": p.ProductType, "stock": p.Stock, "price": p.Price}
		},
		Assign: func(p *models.Product, a validation.Attributes) error {
			p.ProductType = a.String("product_type")
			p.Stock = a.Float("stock")
			p.Price = a.Float("price")
			return nil
		},
		Dependents: []Dependent{
			{Name: "order_products", Table: "order_products", ForeignKey: "product_id", Policy: Restrict},
		},
	}
	return &ProductService{Resource: NewResource(db, def)}
}

// OrderService 订单服务，删除订单时级联删除订单行
type OrderService struct {
	*Resource[models.Order]
}

// NewOrderService 创建一个新的订单服务
func NewOrderService(db *gorm.DB) *OrderService {
	def := Definition[models.Order]{
		Name:      "order",
		Permitted: []string{"order_date", "total", "customer_id"},
		Filters: filter.Of(filter.Date, "order_date").
			With(filter.Of(filter.Integer, "total", "customer_id")),
		Rules: []validation.Rule{
			validation.Presence("order_date", "total"),
			validation.Date("order_date"),
			validation.AllowBlank("total", validation.Numericality("total", validation.OnlyInteger())),
			validation.BelongsTo("customer", "customer_id", "customers"),
		},
		Attributes: func(o *models.Order) validation.Attributes {
			return validation.Attributes{
				"order_date":  o.OrderDate.Format(validation.DateLayout),
				"total":       o.Total,
				"customer_id": o.CustomerID,
			}
		},
		Assign: func(o *models.Order, a validation.Attributes) error {
			o.OrderDate, _ = a.Date("order_date")
			o.Total = a.Int("total")
			o.CustomerID = uintOf(a, "customer_id")
			return nil
		},
		Dependents: []Dependent{
			{Name: "order_products", Table: "order_products", ForeignKey: "order_id", Policy: Cascade},
		},
	}
	return &OrderService{Resource: NewResource(db, def)}
}

// OrderProductService 订单行服务，写入前检查商品库存
type OrderProductService struct {
	*Resource[models.OrderProduct]
	products *ProductService
}

// NewOrderProductService 创建一个新的订单行服务
func NewOrderProductService(db *gorm.DB, products *ProductService) *OrderProductService {
	def := Definition[models.OrderProduct]{
		Name:      "order product",
		Permitted: []string{"quantity", "price", "order_id", "product_id"},
		Filters: filter.Of(filter.Decimal, "quantity", "price").
			With(filter.Of(filter.Integer, "order_id", "product_id")),
		Rules: []validation.Rule{
			validation.Presence("quantity", "price"),
			validation.Numericality("quantity", validation.GreaterThan(0)),
			validation.Numericality("price", validation.GreaterThanOrEqualTo(0)),
			validation.BelongsTo("order", "order_id", "orders"),
			validation.BelongsTo("product", "product_id", "products"),
		},
		Attributes: func(op *models.OrderProduct) validation.Attributes {
			return validation.Attributes{
				"quantity":   op.Quantity,
				"price":      op.Price,
				"order_id":   op.OrderID,
				"product_id": op.ProductID,
			}
		},
		Assign: func(op *models.OrderProduct, a validation.Attributes) error {
			op.Quantity = a.Float("quantity")
			op.Price = a.Float("price")
			op.OrderID = uintOf(a, "order_id")
			op.ProductID = uintOf(a, "product_id")
			return nil
		},
	}
	return &OrderProductService{Resource: NewResource(db, def), products: products}
}

// ResolveProduct 确定库存检查所用的商品。
// 提交了 product_id 时必须指向存在的商品，否则返回 ErrRecordNotFound；更新时未提交则沿用原商品。
func (s *OrderProductService) ResolveProduct(ctx context.Context, existing *models.OrderProduct, params validation.Attributes) (*models.Product, error) {
	if existing != nil && params.Blank("product_id") {
		return s.products.Find(ctx, existing.ProductID)
	}

	id, ok := params.Uint("product_id")
	if !ok {
		return nil, ErrRecordNotFound
	}
	return s.products.Find(ctx, id)
}

// CheckStock 数量按宽松规则解析，超过库存时返回 ErrStockExceeded
func (s *OrderProductService) CheckStock(product *models.Product, params validation.Attributes) error {
	if params.LenientFloat("quantity") > product.Stock {
		return ErrStockExceeded
	}
	return nil
}
