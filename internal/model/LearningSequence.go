package model

type LearningSequence struct {
	BaseModel
	CourseID     string `gorm:"type:text;not null;index" json:"courseId"`
	UsageKey     string `gorm:"type:text;not null;uniqueIndex" json:"usageKey"`
	UsageKeyHash string `gorm:"type:varchar(32);not null;uniqueIndex" json:"usageKeyHash"`
	Title        string `gorm:"type:text;not null" json:"title"`
}

func (ls LearningSequence) TableName() string {
	return "learning_sequences"
}
