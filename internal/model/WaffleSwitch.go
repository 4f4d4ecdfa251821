package model

import "time"

type WaffleSwitch struct {
	Name      string     `gorm:"type:varchar(255);primaryKey" json:"name"`
	Active    bool       `gorm:"type:boolean;default:false" json:"active"`
	Note      string     `gorm:"type:text;default:''" json:"note"`
	CreatedAt *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
	UpdatedAt *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
}

func (w WaffleSwitch) TableName() string {
	return "waffle_switches"
}
