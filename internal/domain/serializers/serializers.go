package serializers

import "logistics-http-service/internal/domain/models"

// 每个实体只输出固定字段，外键以ID形式输出，不嵌套关联对象。

type Editor struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	SuperEditor bool   `json:"super_editor"`
}

func NewEditor(e *models.Editor) Editor {
	return Editor{ID: e.ID, Name: e.Name, Email: e.Email, SuperEditor: e.SuperEditor}
}

func NewEditors(items []models.Editor) []Editor {
	return collection(items, NewEditor)
}

type Customer struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	EditorID uint   `json:"editor_id"`
}

func NewCustomer(c *models.Customer) Customer {
	return Customer{ID: c.ID, Name: c.Name, Phone: c.Phone, EditorID: c.EditorID}
}

func NewCustomers(items []models.Customer) []Customer {
	return collection(items, NewCustomer)
}

type Traveler struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	EditorID uint   `json:"editor_id"`
}

func NewTraveler(t *models.Traveler) Traveler {
	return Traveler{ID: t.ID, Name: t.Name, Phone: t.Phone, EditorID: t.EditorID}
}

func NewTravelers(items []models.Traveler) []Traveler {
	return collection(items, NewTraveler)
}

type Flight struct {
	ID          uint   `json:"id"`
	FlightDate  Date   `json:"flight_date"`
	TicketNo    string `json:"ticket_no"`
	TicketPrice int64  `json:"ticket_price"`
	Airline     string `json:"airline"`
	TravelerID  uint   `json:"traveler_id"`
	TripType    string `json:"trip_type"`
}

func NewFlight(f *models.Flight) Flight {
	return Flight{
		ID:          f.ID,
		FlightDate:  Date(f.FlightDate),
		TicketNo:    f.TicketNo,
		TicketPrice: f.TicketPrice,
		Airline:     f.Airline,
		TravelerID:  f.TravelerID,
		TripType:    f.TripType,
	}
}

func NewFlights(items []models.Flight) []Flight {
	return collection(items, NewFlight)
}

type FlightExpense struct {
	ID          uint   `json:"id"`
	ExpenseType string `json:"expense_type"`
	Amount      int64  `json:"amount"`
	FlightID    uint   `json:"flight_id"`
	Direction   string `json:"direction"`
}

func NewFlightExpense(e *models.FlightExpense) FlightExpense {
	return FlightExpense{ID: e.ID, ExpenseType: e.ExpenseType, Amount: e.Amount, FlightID: e.FlightID, Direction: e.Direction}
}

func NewFlightExpenses(items []models.FlightExpense) []FlightExpense {
	return collection(items, NewFlightExpense)
}

type Shipment struct {
	ID         uint    `json:"id"`
	Direction  string  `json:"direction"`
	Total      int64   `json:"total"`
	Status     *string `json:"status"`
	CustomerID uint    `json:"customer_id"`
	EditorID   uint    `json:"editor_id"`
	FlightID   uint    `json:"flight_id"`
}

func NewShipment(s *models.Shipment) Shipment {
	return Shipment{
		ID:         s.ID,
		Direction:  s.Direction,
		Total:      s.Total,
		Status:     s.Status,
		CustomerID: s.CustomerID,
		EditorID:   s.EditorID,
		FlightID:   s.FlightID,
	}
}

func NewShipments(items []models.Shipment) []Shipment {
	return collection(items, NewShipment)
}

type Content struct {
	ID          uint   `json:"id"`
	ContentType string `json:"content_type"`
	Weight      int64  `json:"weight"`
	ItemsNumber int64  `json:"items_number"`
	KgPrice     int64  `json:"kg_price"`
	ShipmentID  uint   `json:"shipment_id"`
}

func NewContent(c *models.Content) Content {
	return Content{
		ID:          c.ID,
		ContentType: c.ContentType,
		Weight:      c.Weight,
		ItemsNumber: c.ItemsNumber,
		KgPrice:     c.KgPrice,
		ShipmentID:  c.ShipmentID,
	}
}

func NewContents(items []models.Content) []Content {
	return collection(items, NewContent)
}

type Product struct {
	ID          uint    `json:"id"`
	ProductType string  `json:"product_type"`
	Stock       Decimal `json:"stock"`
	Price       Decimal `json:"price"`
}

func NewProduct(p *models.Product) Product {
	return Product{ID: p.ID, ProductType: p.ProductType, Stock: Decimal(p.Stock), Price: Decimal(p.Price)}
}

func NewProducts(items []models.Product) []Product {
	return collection(items, NewProduct)
}

type Order struct {
	ID         uint  `json:"id"`
	OrderDate  Date  `json:"order_date"`
	Total      int64 `json:"total"`
	CustomerID uint  `json:"customer_id"`
}

func NewOrder(o *models.Order) Order {
	return Order{ID: o.ID, OrderDate: Date(o.OrderDate), Total: o.Total, CustomerID: o.CustomerID}
}

func NewOrders(items []models.Order) []Order {
	return collection(items, NewOrder)
}

type OrderProduct struct {
	ID        uint    `json:"id"`
	Quantity  Decimal `json:"quantity"`
	Price     Decimal `json:"price"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
}

func NewOrderProduct(op *models.OrderProduct) OrderProduct {
	return OrderProduct{
		ID:        op.ID,
		Quantity:  Decimal(op.Quantity),
		Price:     Decimal(op.Price),
		OrderID:   op.OrderID,
		ProductID: op.ProductID,
	}
}

func NewOrderProducts(items []models.OrderProduct) []OrderProduct {
	return collection(items, NewOrderProduct)
}
