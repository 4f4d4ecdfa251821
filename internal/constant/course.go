package constant

type CertificatesDisplayBehavior string

const (
	DisplayBehaviorEarlyNoInfo CertificatesDisplayBehavior = "early_no_info"
	DisplayBehaviorEnd         CertificatesDisplayBehavior = "end"
	DisplayBehaviorEndWithDate CertificatesDisplayBehavior = "end_with_date"
)

type CourseAccessRole string

const (
	CourseRoleBetaTester CourseAccessRole = "beta_testers"
	CourseRoleStaff      CourseAccessRole = "staff"
	CourseRoleInstructor CourseAccessRole = "instructor"
)

type IDVerificationStatus string

const (
	IDVerificationApproved     IDVerificationStatus = "approved"
	IDVerificationPending      IDVerificationStatus = "pending"
	IDVerificationMustReverify IDVerificationStatus = "must_reverify"
	IDVerificationDenied       IDVerificationStatus = "denied"
	IDVerificationExpired      IDVerificationStatus = "expired"
	IDVerificationNone         IDVerificationStatus = "none"
)

const (
	// Waffle namespace for the certificates app.
	CertificatesWaffleNamespace = "certificates"

	SwitchAutoCertificateGeneration = CertificatesWaffleNamespace + ".auto_certificate_generation"
)
