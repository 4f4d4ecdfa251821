package model

import "time"

type CertificateGenerationCourseSetting struct {
	CourseID              string     `gorm:"type:text;primaryKey" json:"courseId"`
	SelfGenerationEnabled bool       `gorm:"type:boolean;default:false" json:"selfGenerationEnabled"`
	CreatedAt             *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
	UpdatedAt             *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
}

func (s CertificateGenerationCourseSetting) TableName() string {
	return "certificate_generation_course_settings"
}
