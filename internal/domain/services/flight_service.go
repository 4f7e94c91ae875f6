package services

import (
	"logistics-http-service/internal/domain/filter"
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"

	"gorm.io/gorm"
)

// FlightService 航班服务，删除航班时级联删除其费用
type FlightService struct {
	*Resource[models.Flight]
}

// NewFlightService 创建一个新的航班服务
func NewFlightService(db *gorm.DB) *FlightService {
	def := Definition[models.Flight]{
		Name:      "flight",
		Permitted: []string{"flight_date", "ticket_no", "ticket_price", "airline", "traveler_id", "trip_type"},
		Filters: filter.Of(filter.Date, "flight_date").
			With(filter.Of(filter.String, "ticket_no", "airline", "trip_type")).
			With(filter.Of(filter.Integer, "ticket_price", "traveler_id")),
		Rules: []validation.Rule{
			validation.Presence("flight_date", "ticket_no", "ticket_price", "airline", "trip_type"),
			validation.Date("flight_date"),
			validation.AllowBlank("ticket_price", validation.Numericality("ticket_price", validation.OnlyInteger())),
			validation.BelongsTo("traveler", "traveler_id", "travelers"),
		},
		Attributes: func(f *models.Flight) validation.Attributes {
			return validation.Attributes{
				"flight_date":  f.FlightDate.Format(validation.DateLayout),
				"ticket_no":    f.TicketNo,
				"ticket_price": f.TicketPrice,
				"airline":      f.Airline,
				"traveler_id":  f.TravelerID,
				"trip_type":    f.TripType,
			}
		},
		Assign: func(f *models.Flight, a validation.Attributes) error {
			f.FlightDate, _ = a.Date("flight_date")
			f.TicketNo = a.String("ticket_no")
			f.TicketPrice = a.Int("ticket_price")
			f.Airline = a.String("airline")
			f.TravelerID = uintOf(a, "traveler_id")
			f.TripType = a.String("trip_type")
			return nil
		},
		Dependents: []Dependent{
			{Name: "shipments", Table: "shipments", ForeignKey: "flight_id", Policy: Restrict},
			{Name: "flight_expenses", Table: "flight_expenses", ForeignKey: "flight_id", Policy: Cascade},
		},
	}
	return &FlightService{Resource: NewResource(db, def)}
}

// FlightExpenseService 航班费用服务，只能在航班之下访问
type FlightExpenseService struct {
	*Resource[models.FlightExpense]
}

// NewFlightExpenseService 创建一个新的航班费用服务
func NewFlightExpenseService(db *gorm.DB) *FlightExpenseService {
	def := Definition[models.FlightExpense]{
		Name:      "flight expense",
		Permitted: []string{"expense_type", "amount", "flight_id", "direction"},
		Filters: filter.Of(filter.String, "expense_type", "direction").
			With(filter.Of(filter.Integer, "amount", "flight_id")),
		Rules: []validation.Rule{
			validation.Presence("expense_type", "amount", "direction"),
			validation.Numericality("amount", validation.OnlyInteger()),
			validation.BelongsTo("flight", "flight_id", "flights"),
		},
		Attributes: func(e *models.FlightExpense) validation.Attributes {
			return validation.Attributes{
				"expense_type": e.ExpenseType,
				"amount":       e.Amount,
				"flight_id":    e.FlightID,
				"direction":    e.Direction,
			}
		},
		Assign: func(e *models.FlightExpense, a validation.Attributes) error {
			e.ExpenseType = a.String("expense_type")
			e.Amount = a.Int("amount")
			e.FlightID = uintOf(a, "flight_id")
			e.Direction = a.String("direction")
			return nil
		},
	}
	return &FlightExpenseService{Resource: NewResource(db, def)}
}
