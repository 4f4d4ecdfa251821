package certificate

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
)

const downloadURLExpiry = 24 * time.Hour

// CertificateData is the certificate state shown to learners and presentation layers.
type CertificateData struct {
	Status        constant.CertificateStatus `json:"certStatus"`
	Mode          constant.EnrollmentMode    `json:"mode"`
	Grade         string                     `json:"grade"`
	VerifyUUID    string                     `json:"verifyUuid"`
	DownloadURL   string                     `json:"downloadUrl"`
	AvailableDate time.Time                  `json:"certificateAvailableDate"`
	DisplayDate   time.Time                  `json:"displayDate"`
	IsValidPdf    bool                       `json:"isValidPdf"`
}

func (s *Service) AutoCertificateGenerationEnabled(ctx context.Context) (bool, error) {
	enabled, err := s.repo.WaffleSwitch.IsEnabled(ctx, nil, constant.SwitchAutoCertificateGeneration)
	if err != nil {
		return false, fmt.Errorf("failed to read %s switch: %w", constant.SwitchAutoCertificateGeneration, err)
	}
	return enabled, nil
}

// Only instructor paced courses show the available date, and only when
// certificates are generated automatically.
func (s *Service) CanShowCertificateAvailableDateField(ctx context.Context, course *model.CourseOverview) (bool, error) {
	enabled, err := s.AutoCertificateGenerationEnabled(ctx)
	if err != nil {
		return false, err
	}

	return enabled && !course.SelfPaced, nil
}

func (s *Service) courseUsesAvailableDate(ctx context.Context, course *model.CourseOverview) (bool, error) {
	canShow, err := s.CanShowCertificateAvailableDateField(ctx, course)
	if err != nil {
		return false, err
	}

	displayBehaviorIsValid := true
	if s.cfg.Certificate.EnableV2DisplaySettings {
		displayBehaviorIsValid = course.CertificatesDisplayBehavior == constant.DisplayBehaviorEndWithDate
	}

	return canShow && course.CertificateAvailableDate != nil && displayBehaviorIsValid, nil
}

// AvailableDateForCertificate returns override, or the course available date, when the course
// uses its available date. Otherwise the certificate's modified date.
func (s *Service) AvailableDateForCertificate(ctx context.Context, course *model.CourseOverview, cert *model.Certificate, override *time.Time) (time.Time, error) {
	uses, err := s.courseUsesAvailableDate(ctx, course)
	if err != nil {
		return time.Time{}, err
	}

	if uses {
		if override != nil {
			return *override, nil
		}
		return *course.CertificateAvailableDate, nil
	}

	return cert.ModifiedDate(), nil
}

// The course available date is only displayed once it has passed.
func (s *Service) DisplayDateForCertificate(ctx context.Context, course *model.CourseOverview, cert *model.Certificate) (time.Time, error) {
	uses, err := s.courseUsesAvailableDate(ctx, course)
	if err != nil {
		return time.Time{}, err
	}

	if uses && course.CertificateAvailableDate.Before(s.now()) {
		return *course.CertificateAvailableDate, nil
	}

	return cert.ModifiedDate(), nil
}

func IsValidPdfCertificate(data CertificateData) bool {
	return data.Status == constant.CertificateStatusDownloadable && data.DownloadURL != ""
}

// CertificatesViewableForCourse reports whether learners may see certificate information yet.
func (s *Service) CertificatesViewableForCourse(course *model.CourseOverview) bool {
	if course.SelfPaced {
		return true
	}

	if course.CertificatesDisplayBehavior == constant.DisplayBehaviorEarlyNoInfo || course.CertificatesShowBeforeEnd {
		return true
	}

	now := s.now()
	availableDatePassed := course.CertificateAvailableDate != nil && !course.CertificateAvailableDate.After(now)

	if s.cfg.Certificate.EnableV2DisplaySettings {
		switch course.CertificatesDisplayBehavior {
		case constant.DisplayBehaviorEndWithDate:
			return availableDatePassed
		case constant.DisplayBehaviorEnd:
			return course.HasEnded(now)
		}
		return false
	}

	if availableDatePassed {
		return true
	}

	return course.CertificateAvailableDate == nil && course.HasEnded(now)
}

func (s *Service) IsOnAllowlist(ctx context.Context, userID, courseID string) (bool, error) {
	return s.repo.Allowlist.IsOnAllowlist(ctx, nil, userID, courseID)
}

func (s *Service) IsBetaTester(ctx context.Context, userID, courseID string) (bool, error) {
	return s.repo.AccessRole.HasRole(ctx, nil, userID, courseID, constant.CourseRoleBetaTester)
}

// CanShowCertificateMessage reports whether a certificate message may be shown to the learner.
func (s *Service) CanShowCertificateMessage(ctx context.Context, course *model.CourseOverview, userID string, grade *model.CourseGrade, certificatesEnabledForCourse bool) (bool, error) {
	autoEnabled, err := s.AutoCertificateGenerationEnabled(ctx)
	if err != nil {
		return false, err
	}

	hasActiveEnrollment, err := s.repo.Enrollment.IsEnrolled(ctx, nil, userID, course.ID)
	if err != nil {
		return false, err
	}

	isBetaTester, err := s.IsBetaTester(ctx, userID, course.ID)
	if err != nil {
		return false, err
	}

	hasPassedOrIsAllowlisted, err := s.hasPassedOrIsAllowlisted(ctx, course, userID, grade)
	if err != nil {
		return false, err
	}

	return (autoEnabled || certificatesEnabledForCourse) &&
		hasActiveEnrollment &&
		s.CertificatesViewableForCourse(course) &&
		hasPassedOrIsAllowlisted &&
		!isBetaTester, nil
}

func (s *Service) hasPassedOrIsAllowlisted(ctx context.Context, course *model.CourseOverview, userID string, grade *model.CourseGrade) (bool, error) {
	if grade != nil && grade.Passed {
		return true, nil
	}

	return s.IsOnAllowlist(ctx, userID, course.ID)
}

// CertificateDataFor returns the learner's certificate with its computed dates, or nil when none exists.
func (s *Service) CertificateDataFor(ctx context.Context, userID string, course *model.CourseOverview) (*CertificateData, error) {
	cert, err := s.repo.Certificate.CertificateForStudent(ctx, nil, userID, course.ID)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, nil
	}

	availableDate, err := s.AvailableDateForCertificate(ctx, course, cert, nil)
	if err != nil {
		return nil, err
	}

	displayDate, err := s.DisplayDateForCertificate(ctx, course, cert)
	if err != nil {
		return nil, err
	}

	data := &CertificateData{
		Status:        cert.Status,
		Mode:          cert.Mode,
		Grade:         cert.Grade,
		VerifyUUID:    cert.VerifyUUID,
		AvailableDate: availableDate,
		DisplayDate:   displayDate,
	}

	if cert.DownloadURL != "" && s.store != nil {
		url, err := s.store.PresignedURL(ctx, cert.DownloadURL, downloadURLExpiry)
		if err != nil {
			s.logger.Errorf("Failed to presign certificate artifact %s: %v", cert.DownloadURL, err)
		} else {
			data.DownloadURL = url
		}
	}
	data.IsValidPdf = IsValidPdfCertificate(*data)

	return data, nil
}
