package models

import "time"

// Product 库存商品
type Product struct {
	BaseModel
	ProductType string  `gorm:"type:varchar(255)" json:"product_type"`
	Stock       float64 `gorm:"type:decimal(10,2)" json:"stock"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	BaseModel
	OrderDate  time.Time `gorm:"type:date" json:"order_date"`
	Total      int64     `json:"total"`
	CustomerID uint      `gorm:"index" json:"customer_id"`
}

func (Order) TableName() string { return "orders" }

// OrderProduct 订单行，数量不能超过商品当前库存
type OrderProduct struct {
	BaseModel
	Quantity  float64 `gorm:"type:decimal(10,2)" json:"quantity"`
	Price     float64 `gorm:"type:decimal(10,2)" json:"price"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `gorm:"index" json:"product_id"`
}

func (OrderProduct) TableName() string { return "order_products" }
