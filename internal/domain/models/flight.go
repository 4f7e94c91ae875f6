package models

import "time"

type Flight struct {
	BaseModel
	FlightDate  time.Time `gorm:"type:date" json:"flight_date"`
	TicketNo    string    `gorm:"type:varchar(255)" json:"ticket_no"`
	TicketPrice int64     `json:"ticket_price"`
	Airline     string    `gorm:"type:varchar(255)" json:"airline"`
	TripType    string    `gorm:"type:varchar(255)" json:"trip_type"`
	TravelerID  uint      `gorm:"index" json:"traveler_id"`
}

func (Flight) TableName() string { return "flights" }

// FlightExpense 航班产生的费用，随航班一起删除
type FlightExpense struct {
	BaseModel
	ExpenseType string `gorm:"type:varchar(255)" json:"expense_type"`
	Amount      int64  `json:"amount"`
	Direction   string `gorm:"type:varchar(255)" json:"direction"`
	FlightID    uint   `gorm:"index" json:"flight_id"`
}

func (FlightExpense) TableName() string { return "flight_expenses" }
