package model

import (
	"time"

	"gorm.io/datatypes"
)

type CertificateLog struct {
	BaseModel

	CertificateID string            `gorm:"type:text;not null;index" json:"certificateId"`
	UserID        string            `gorm:"type:text;not null" json:"userId"`
	CourseID      string            `gorm:"type:text;not null" json:"courseId"`
	Action        string            `gorm:"type:text;not null;" json:"action"`
	Source        string            `gorm:"type:text;not null;" json:"source"`
	Context       datatypes.JSONMap `json:"context"`
	Timestamp     time.Time         `gorm:"not null;" json:"timestamp"`
}

func (cl CertificateLog) TableName() string {
	return "certificate_logs"
}
