package model

type CertificateAllowlist struct {
	BaseModel
	UserID    string `gorm:"type:text;not null;uniqueIndex:idx_allowlist_user_course" json:"userId" form:"userId"`
	CourseID  string `gorm:"type:text;not null;uniqueIndex:idx_allowlist_user_course" json:"courseId" form:"courseId"`
	Allowlist bool   `gorm:"type:boolean;not null" json:"allowlist" form:"allowlist"`
	Notes     string `gorm:"type:text;default:''" json:"notes" form:"notes"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (ca CertificateAllowlist) TableName() string {
	return "certificate_allowlists"
}
