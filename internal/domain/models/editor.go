package models

// Editor 系统操作人员，super_editor 为管理员
type Editor struct {
	BaseModel
	Name           string `gorm:"type:varchar(255)" json:"name"`
	Email          string `gorm:"type:varchar(191);uniqueIndex" json:"email"`
	PasswordDigest string `gorm:"type:varchar(100)" json:"-"`
	SuperEditor    bool   `json:"super_editor"`
}

func (Editor) TableName() string { return "editors" }
