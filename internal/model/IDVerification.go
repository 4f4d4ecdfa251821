package model

import (
	"time"

	"github.com/SeakMengs/CourseCert/internal/constant"
)

type IDVerification struct {
	BaseModel
	UserID         string                        `gorm:"type:text;not null;index" json:"userId"`
	Status         constant.IDVerificationStatus `gorm:"type:varchar(32);not null" json:"status"`
	ExpirationDate *time.Time                    `json:"expirationDate"`
}

func (v IDVerification) TableName() string {
	return "id_verifications"
}
