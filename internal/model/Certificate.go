package model

import (
	"fmt"
	"time"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"gorm.io/gorm"
)

// Certificate is a course certificate generated for a learner.
type Certificate struct {
	BaseModel
	UserID         string                     `gorm:"type:text;not null;uniqueIndex:idx_certificate_user_course" json:"userId" form:"userId"`
	CourseID       string                     `gorm:"type:text;not null;uniqueIndex:idx_certificate_user_course" json:"courseId" form:"courseId"`
	Status         constant.CertificateStatus `gorm:"type:varchar(32);not null;default:unavailable" json:"status" form:"status"`
	Mode           constant.EnrollmentMode    `gorm:"type:varchar(100);not null;default:honor" json:"mode" form:"mode"`
	Grade          string                     `gorm:"type:varchar(8);default:''" json:"grade" form:"grade"`
	VerifyUUID     string                     `gorm:"type:varchar(32);index" json:"verifyUuid" form:"verifyUuid"`
	DownloadURL    string                     `gorm:"type:text;default:''" json:"downloadUrl" form:"downloadUrl"`
	ArtifactFileID *string                    `gorm:"type:text" json:"artifactFileId" form:"artifactFileId"`

	User         User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
	ArtifactFile *File `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"artifactFile,omitempty" form:"-"`
}

func (c Certificate) TableName() string {
	return "certificates"
}

func (c *Certificate) BeforeSave(tx *gorm.DB) error {
	if !c.Status.IsValid() {
		return fmt.Errorf("invalid certificate status %q", c.Status)
	}
	return nil
}

func (c Certificate) IsValid() bool {
	return c.Status == constant.CertificateStatusDownloadable
}

func (c Certificate) ModifiedDate() time.Time {
	if c.UpdatedAt == nil {
		return time.Time{}
	}
	return *c.UpdatedAt
}
