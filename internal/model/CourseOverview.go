package model

import (
	"time"

	"github.com/SeakMengs/CourseCert/internal/constant"
)

// CourseOverview is the cached summary of a course run, keyed by its course key.
type CourseOverview struct {
	ID                          string                               `gorm:"type:text;primaryKey" json:"id"`
	DisplayName                 string                               `gorm:"type:text;not null" json:"displayName"`
	Org                         string                               `gorm:"type:varchar(255);not null" json:"org"`
	Number                      string                               `gorm:"type:varchar(255);not null" json:"number"`
	Start                       *time.Time                           `json:"start"`
	End                         *time.Time                           `json:"end"`
	SelfPaced                   bool                                 `gorm:"type:boolean;default:false" json:"selfPaced"`
	CertificateAvailableDate    *time.Time                           `json:"certificateAvailableDate"`
	CertificatesDisplayBehavior constant.CertificatesDisplayBehavior `gorm:"type:varchar(50);default:end" json:"certificatesDisplayBehavior"`
	CertificatesShowBeforeEnd   bool                                 `gorm:"type:boolean;default:false" json:"certificatesShowBeforeEnd"`
	CreatedAt                   *time.Time                           `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
	UpdatedAt                   *time.Time                           `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
}

func (co CourseOverview) TableName() string {
	return "course_overviews"
}

func (co CourseOverview) HasStarted(now time.Time) bool {
	return co.Start == nil || !co.Start.After(now)
}

func (co CourseOverview) HasEnded(now time.Time) bool {
	return co.End != nil && co.End.Before(now)
}
