package model

import "github.com/SeakMengs/CourseCert/internal/constant"

type Enrollment struct {
	BaseModel
	UserID   string                  `gorm:"type:text;not null;uniqueIndex:idx_enrollment_user_course" json:"userId" form:"userId"`
	CourseID string                  `gorm:"type:text;not null;uniqueIndex:idx_enrollment_user_course" json:"courseId" form:"courseId"`
	Mode     constant.EnrollmentMode `gorm:"type:varchar(100);not null;default:audit" json:"mode" form:"mode"`
	IsActive bool                    `gorm:"type:boolean;not null" json:"isActive" form:"isActive"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (e Enrollment) TableName() string {
	return "enrollments"
}
