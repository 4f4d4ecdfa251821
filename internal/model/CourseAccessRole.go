package model

import "github.com/SeakMengs/CourseCert/internal/constant"

type CourseAccessRole struct {
	BaseModel
	UserID   string                    `gorm:"type:text;not null;uniqueIndex:idx_access_role" json:"userId"`
	CourseID string                    `gorm:"type:text;not null;uniqueIndex:idx_access_role" json:"courseId"`
	Role     constant.CourseAccessRole `gorm:"type:varchar(64);not null;uniqueIndex:idx_access_role" json:"role"`
}

func (r CourseAccessRole) TableName() string {
	return "course_access_roles"
}
