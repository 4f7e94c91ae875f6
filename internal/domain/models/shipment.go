package models

// ShipmentStatus 货运状态，取值之间没有先后约束
type ShipmentStatus string

const (
	ShipmentReceived  ShipmentStatus = "received"
	ShipmentShipped   ShipmentStatus = "shipped"
	ShipmentDelivered ShipmentStatus = "delivered"
)

// ShipmentStatuses 所有合法的货运状态
var ShipmentStatuses = []string{
	string(ShipmentReceived),
	string(ShipmentShipped),
	string(ShipmentDelivered),
}

type Shipment struct {
	BaseModel
	Direction  string  `gorm:"type:varchar(255)" json:"direction"`
	Total      int64   `json:"total"`
	Status     *string `gorm:"type:varchar(20)" json:"status"`
	CustomerID uint    `gorm:"index" json:"customer_id"`
	EditorID   uint    `gorm:"index" json:"editor_id"`
	FlightID   uint    `gorm:"index" json:"flight_id"`
}

func (Shipment) TableName() string { return "shipments" }

// ContentTypes 货物内容的分类
var ContentTypes = []string{"shoes", "clothes", "cosmetics", "food_products", "home_related"}

// Content 货运中的一类货物
type Content struct {
	BaseModel
	ContentType string  `gorm:"type:varchar(50)" json:"content_type"`
	Weight      int64   `json:"weight"`
	ItemsNumber int64   `json:"items_number"`
	KgPrice     int64   `json:"kg_price"`
	ShipmentID  uint    `gorm:"index" json:"shipment_id"`
}

func (Content) TableName() string { return "contents" }
