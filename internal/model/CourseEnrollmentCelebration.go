package model

type CourseEnrollmentCelebration struct {
	BaseModel
	EnrollmentID          string `gorm:"type:text;not null;uniqueIndex" json:"enrollmentId"`
	CelebrateFirstSection bool   `gorm:"type:boolean;default:false" json:"celebrateFirstSection"`
	CelebrateWeeklyGoal   bool   `gorm:"type:boolean;default:false" json:"celebrateWeeklyGoal"`

	Enrollment Enrollment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (c CourseEnrollmentCelebration) TableName() string {
	return "course_enrollment_celebrations"
}
