package model

import "github.com/SeakMengs/CourseCert/internal/constant"

type CourseMode struct {
	BaseModel
	CourseID        string                  `gorm:"type:text;not null;uniqueIndex:idx_course_mode" json:"courseId"`
	ModeSlug        constant.EnrollmentMode `gorm:"type:varchar(100);not null;uniqueIndex:idx_course_mode" json:"modeSlug"`
	ModeDisplayName string                  `gorm:"type:varchar(255);not null" json:"modeDisplayName"`
	MinPrice        int                     `gorm:"type:integer;default:0" json:"minPrice"`
	Currency        string                  `gorm:"type:varchar(8);default:usd" json:"currency"`
	Sku             string                  `gorm:"type:varchar(255);default:''" json:"sku"`
}

func (cm CourseMode) TableName() string {
	return "course_modes"
}
