package constant

import "slices"

type EnrollmentMode string

const (
	EnrollmentModeAudit              EnrollmentMode = "audit"
	EnrollmentModeHonor              EnrollmentMode = "honor"
	EnrollmentModeVerified           EnrollmentMode = "verified"
	EnrollmentModeProfessional       EnrollmentMode = "professional"
	EnrollmentModeNoIDProfessional   EnrollmentMode = "no-id-professional"
	EnrollmentModeCredit             EnrollmentMode = "credit"
	EnrollmentModeMasters            EnrollmentMode = "masters"
	EnrollmentModeExecutiveEducation EnrollmentMode = "executive-education"
)

var idVerificationRequiredModes = []EnrollmentMode{
	EnrollmentModeVerified,
	EnrollmentModeProfessional,
	EnrollmentModeCredit,
}

func (m EnrollmentMode) String() string {
	return string(m)
}

// IsEligibleForCertificate reports whether learners in this mode can earn a certificate.
// Honor stops being eligible when honor certificates are disabled.
func (m EnrollmentMode) IsEligibleForCertificate(disableHonorCertificates bool) bool {
	switch m {
	case "", EnrollmentModeAudit:
		return false
	case EnrollmentModeHonor:
		return !disableHonorCertificates
	}

	return true
}

func (m EnrollmentMode) RequiresIDVerification() bool {
	return slices.Contains(idVerificationRequiredModes, m)
}
