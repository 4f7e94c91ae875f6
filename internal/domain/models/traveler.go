package models

// Traveler 随航班携带货物的旅客
type Traveler struct {
	BaseModel
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Phone    string `gorm:"type:varchar(191);uniqueIndex" json:"phone"`
	EditorID uint   `gorm:"index" json:"editor_id"`
}

func (Traveler) TableName() string { return "travelers" }
