package model

type User struct {
	BaseModel
	Username  string `gorm:"unique;not null;type:varchar(150)" json:"username" form:"username" binding:"required"`
	Email     string `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required"`
	FirstName string `gorm:"type:varchar(30);not null;" json:"firstName" form:"firstName"`
	LastName  string `gorm:"type:varchar(30);not null;" json:"lastName" form:"lastName"`
	IsStaff   bool   `gorm:"type:boolean;default:false" json:"isStaff" form:"isStaff"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}

	return u.FirstName + " " + u.LastName
}
