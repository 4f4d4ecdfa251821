package model

import "fmt"

type CourseGrade struct {
	BaseModel
	UserID      string  `gorm:"type:text;not null;uniqueIndex:idx_grade_user_course" json:"userId"`
	CourseID    string  `gorm:"type:text;not null;uniqueIndex:idx_grade_user_course" json:"courseId"`
	Percent     float64 `gorm:"type:double precision;not null;default:0" json:"percent"`
	LetterGrade string  `gorm:"type:varchar(32);default:''" json:"letterGrade"`
	Passed      bool    `gorm:"type:boolean;default:false" json:"passed"`
}

func (g CourseGrade) TableName() string {
	return "course_grades"
}

// PercentString formats the grade the way it is stored on a certificate.
func (g CourseGrade) PercentString() string {
	return fmt.Sprintf("%.2f", g.Percent)
}
