package models

// Customer 客户，由创建它的 Editor 持有
type Customer struct {
	BaseModel
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Phone    string `gorm:"type:varchar(191);uniqueIndex" json:"phone"`
	EditorID uint   `gorm:"index" json:"editor_id"`
}

func (Customer) TableName() string { return "customers" }
