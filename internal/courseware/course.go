package courseware

import (
	"context"
	"time"

	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/util"
)

type EnrollmentInfo struct {
	Mode     constant.EnrollmentMode `json:"mode"`
	IsActive bool                    `json:"is_active"`
}

type CoursewareInfo struct {
	ID                              string                               `json:"id"`
	Name                            string                               `json:"name"`
	Org                             string                               `json:"org"`
	Number                          string                               `json:"number"`
	Start                           *time.Time                           `json:"start"`
	End                             *time.Time                           `json:"end"`
	IsSelfPaced                     bool                                 `json:"is_self_paced"`
	IsStaff                         bool                                 `json:"is_staff"`
	CertificatesDisplayBehavior     constant.CertificatesDisplayBehavior `json:"certificates_display_behavior"`
	Enrollment                      EnrollmentInfo                       `json:"enrollment"`
	CanShowCertificateAvailableDate bool                                 `json:"can_show_certificate_available_date"`
	CertificateAvailableDate        *time.Time                           `json:"certificate_available_date"`
	ShowCertificateMessage          bool                                 `json:"show_certificate_message"`
	CertificateData                 *certificate.CertificateData         `json:"certificate_data"`
}

func (s *Service) CoursewareInformation(ctx context.Context, viewer Viewer, courseKey string) (*CoursewareInfo, error) {
	course, err := s.Course(ctx, courseKey)
	if err != nil {
		return nil, err
	}

	info := &CoursewareInfo{
		ID:                          course.ID,
		Name:                        course.DisplayName,
		Org:                         course.Org,
		Number:                      course.Number,
		Start:                       course.Start,
		End:                         course.End,
		IsSelfPaced:                 course.SelfPaced,
		CertificatesDisplayBehavior: course.CertificatesDisplayBehavior,
	}

	roles, err := s.repo.AccessRole.ListRoles(ctx, nil, viewer.ID, course.ID)
	if err != nil {
		return nil, err
	}
	info.IsStaff = util.IsCourseStaff(viewer.IsStaff, roles)

	mode, isActive, err := s.repo.Enrollment.EnrollmentModeForUser(ctx, nil, viewer.ID, course.ID)
	if err != nil {
		return nil, err
	}
	info.Enrollment = EnrollmentInfo{Mode: mode, IsActive: isActive}

	canShowDate, err := s.certificates.CanShowCertificateAvailableDateField(ctx, course)
	if err != nil {
		return nil, err
	}
	info.CanShowCertificateAvailableDate = canShowDate
	if canShowDate {
		info.CertificateAvailableDate = course.CertificateAvailableDate
	}

	grade, err := s.repo.CourseGrade.GetForStudent(ctx, nil, viewer.ID, course.ID)
	if err != nil {
		return nil, err
	}

	certificatesEnabled := mode.IsEligibleForCertificate(s.cfg.Certificate.DisableHonorCertificates)
	info.ShowCertificateMessage, err = s.certificates.CanShowCertificateMessage(ctx, course, viewer.ID, grade, certificatesEnabled)
	if err != nil {
		return nil, err
	}

	if info.ShowCertificateMessage {
		info.CertificateData, err = s.certificates.CertificateDataFor(ctx, viewer.ID, course)
		if err != nil {
			return nil, err
		}
	}

	return info, nil
}
