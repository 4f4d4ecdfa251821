package model

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&File{},
		&CourseOverview{},
		&CourseMode{},
		&Enrollment{},
		&CourseEnrollmentCelebration{},
		&CourseGrade{},
		&CourseAccessRole{},
		&IDVerification{},
		&CertificateAllowlist{},
		&CertificateGenerationCourseSetting{},
		&Certificate{},
		&CertificateLog{},
		&WaffleSwitch{},
		&LearningSequence{},
		&CourseResumePosition{},
	}
}
