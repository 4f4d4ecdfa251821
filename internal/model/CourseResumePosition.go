package model

type CourseResumePosition struct {
	BaseModel
	UserID    string `gorm:"type:text;not null;uniqueIndex:idx_resume_user_course" json:"userId"`
	CourseID  string `gorm:"type:text;not null;uniqueIndex:idx_resume_user_course" json:"courseId"`
	SectionID string `gorm:"type:text;default:''" json:"sectionId"`
	UnitID    string `gorm:"type:text;default:''" json:"unitId"`
	BlockID   string `gorm:"type:text;default:''" json:"blockId"`
}

func (p CourseResumePosition) TableName() string {
	return "course_resume_positions"
}
