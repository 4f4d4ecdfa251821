package constant

import "slices"

// CertificateStatus is the lifecycle state of a generated certificate.
type CertificateStatus string

const (
	CertificateStatusDeleted         CertificateStatus = "deleted"
	CertificateStatusDeleting        CertificateStatus = "deleting"
	CertificateStatusDownloadable    CertificateStatus = "downloadable"
	CertificateStatusError           CertificateStatus = "error"
	CertificateStatusGenerating      CertificateStatus = "generating"
	CertificateStatusNotPassing      CertificateStatus = "notpassing"
	CertificateStatusRestricted      CertificateStatus = "restricted"
	CertificateStatusUnavailable     CertificateStatus = "unavailable"
	CertificateStatusAuditing        CertificateStatus = "auditing"
	CertificateStatusAuditPassing    CertificateStatus = "audit_passing"
	CertificateStatusAuditNotPassing CertificateStatus = "audit_notpassing"
	CertificateStatusUnverified      CertificateStatus = "unverified"
	CertificateStatusInvalidated     CertificateStatus = "invalidated"
	CertificateStatusRequesting      CertificateStatus = "requesting"
)

var AllCertificateStatuses = []CertificateStatus{
	CertificateStatusDeleted,
	CertificateStatusDeleting,
	CertificateStatusDownloadable,
	CertificateStatusError,
	CertificateStatusGenerating,
	CertificateStatusNotPassing,
	CertificateStatusRestricted,
	CertificateStatusUnavailable,
	CertificateStatusAuditing,
	CertificateStatusAuditPassing,
	CertificateStatusAuditNotPassing,
	CertificateStatusUnverified,
	CertificateStatusInvalidated,
	CertificateStatusRequesting,
}

var passingCertificateStatuses = []CertificateStatus{
	CertificateStatusDownloadable,
	CertificateStatusGenerating,
	CertificateStatusRequesting,
}

func (s CertificateStatus) String() string {
	return string(s)
}

func (s CertificateStatus) IsValid() bool {
	return slices.Contains(AllCertificateStatuses, s)
}

func (s CertificateStatus) IsPassing() bool {
	return slices.Contains(passingCertificateStatuses, s)
}

// Sources recorded on certificate status changes.
const (
	CertificateSourceNotPassingSignal = "notpassing_signal"
	CertificateSourcePassingSignal    = "passing_grade_signal"
	CertificateSourceAllowlist        = "allowlist_signal"
	CertificateSourceVerified         = "id_verified_signal"
	CertificateSourceTrackChange      = "enrollment_track_signal"
	CertificateSourceSelfGeneration   = "self_generation"
	CertificateSourceManual           = "manual"
	CertificateSourceReaper           = "stale_generation_reaper"
)
