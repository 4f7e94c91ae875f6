package models

import "time"

// BaseModel 所有实体共用的主键和时间戳
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID 返回主键
func (m BaseModel) GetID() uint {
	return m.ID
}

// Entity 是所有可持久化实体的公共接口
type Entity interface {
	GetID() uint
	TableName() string
}

// All 返回需要迁移的所有模型，按依赖顺序排列
func All() []interface{} {
	return []interface{}{
		&Editor{},
		&Customer{},
		&Traveler{},
		&Flight{},
		&FlightExpense{},
		&Shipment{},
		&Content{},
		&Product{},
		&Order{},
		&OrderProduct{},
	}
}
