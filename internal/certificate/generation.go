package certificate

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/mailer"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/util"
	"gorm.io/gorm"
)

// Outcome is what a generation job ended up doing.
type Outcome string

const (
	OutcomeDropped        Outcome = "dropped"
	OutcomeInvalidated    Outcome = "skipped_invalidated"
	OutcomeNotEnrolled    Outcome = "skipped_not_enrolled"
	OutcomeAudit          Outcome = "audit"
	OutcomeUnverified     Outcome = "unverified"
	OutcomeBetaTester     Outcome = "skipped_beta_tester"
	OutcomeNotPassing     Outcome = "notpassing"
	OutcomeGenerated      Outcome = "generated"
	OutcomeGenerateFailed Outcome = "error"
)

// GenerateCertificateTask enqueues a generation job. Allowlisted learners get an allowlist job.
// Return whether a job was enqueued.
func (s *Service) GenerateCertificateTask(ctx context.Context, userID, courseID, source string) (bool, error) {
	allowlisted, err := s.IsOnAllowlist(ctx, userID, courseID)
	if err != nil {
		return false, err
	}

	if allowlisted {
		return s.GenerateAllowlistCertificateTask(ctx, userID, courseID, source)
	}

	return s.enqueue(userID, courseID, source, false)
}

// GenerateAllowlistCertificateTask enqueues an allowlist job when the learner is on the allowlist.
func (s *Service) GenerateAllowlistCertificateTask(ctx context.Context, userID, courseID, source string) (bool, error) {
	allowlisted, err := s.IsOnAllowlist(ctx, userID, courseID)
	if err != nil {
		return false, err
	}

	if !allowlisted {
		s.logger.Infof("User %s is not on the allowlist for %s. No allowlist certificate will be generated.", userID, courseID)
		return false, nil
	}

	return s.enqueue(userID, courseID, source, true)
}

func (s *Service) enqueue(userID, courseID, source string, allowlist bool) (bool, error) {
	job := queue.NewCertificateGeneratePayload(userID, courseID, source, allowlist)
	if err := queue.PublishCertificateGenerateJob(s.publisher, job); err != nil {
		return false, err
	}

	s.logger.Infof("Enqueued certificate generation for %s : %s (source: %s, allowlist: %v)", userID, courseID, source, allowlist)
	return true, nil
}

// RequestSelfGeneratedCertificate lets a learner ask for a certificate in courses that allow it.
func (s *Service) RequestSelfGeneratedCertificate(ctx context.Context, userID, courseID string) (bool, error) {
	enabled, err := s.repo.GenerationSetting.IsSelfGenerationEnabled(ctx, nil, courseID)
	if err != nil {
		return false, err
	}

	if !enabled {
		return false, ErrSelfGenerationDisabled
	}

	return s.GenerateCertificateTask(ctx, userID, courseID, constant.CertificateSourceSelfGeneration)
}

// ReapStaleGenerations marks certificates stuck in generating as error, one
// logged save per certificate. Return the number of certificates marked.
func (s *Service) ReapStaleGenerations(ctx context.Context) (int64, error) {
	olderThan := s.now().Add(-s.cfg.Certificate.GeneratingTimeout)

	stale, err := s.repo.Certificate.ListStaleGenerating(ctx, nil, olderThan)
	if err != nil {
		return 0, err
	}

	var count int64
	var errs []error
	for _, cert := range stale {
		cert.Status = constant.CertificateStatusError
		if _, err := s.repo.Certificate.Save(ctx, nil, cert, "status_error", constant.CertificateSourceReaper); err != nil {
			errs = append(errs, fmt.Errorf("failed to mark certificate %s as error: %w", cert.ID, err))
			continue
		}
		count++
	}

	if count > 0 {
		s.logger.Warnf("Marked %d certificates generating since before %s as error", count, olderThan)
	}

	return count, errors.Join(errs...)
}

// HandleGenerateJob adapts Generate to the queue worker. Return shouldRequeue, err.
func (s *Service) HandleGenerateJob(ctx context.Context, job queue.CertificateGeneratePayload) (bool, error) {
	s.logger.Debugf("Certificate job for %s : %s waited %s in queue", job.UserID, job.CourseID, job.QueueWaitDuration())

	outcome, err := s.Generate(ctx, job)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrCourseNotFound) {
			return false, err
		}
		return true, err
	}

	s.logger.Infof("Certificate job for %s : %s finished with outcome %s", job.UserID, job.CourseID, outcome)
	return false, nil
}

// Generate applies the generation rules for one learner in one course.
func (s *Service) Generate(ctx context.Context, job queue.CertificateGeneratePayload) (Outcome, error) {
	user, err := s.repo.User.GetById(ctx, nil, job.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OutcomeDropped, fmt.Errorf("%w: %s", ErrUserNotFound, job.UserID)
		}
		return OutcomeDropped, err
	}

	course, err := s.repo.CourseOverview.GetById(ctx, nil, job.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OutcomeDropped, fmt.Errorf("%w: %s", ErrCourseNotFound, job.CourseID)
		}
		return OutcomeDropped, err
	}

	cert, err := s.repo.Certificate.CertificateForStudent(ctx, nil, user.ID, course.ID)
	if err != nil {
		return OutcomeDropped, err
	}

	if cert != nil && cert.Status == constant.CertificateStatusInvalidated {
		s.logger.Infof("Certificate for %s : %s is invalidated. It will not be regenerated.", user.ID, course.ID)
		return OutcomeInvalidated, nil
	}

	mode, isActive, err := s.repo.Enrollment.EnrollmentModeForUser(ctx, nil, user.ID, course.ID)
	if err != nil {
		return OutcomeDropped, err
	}

	if !isActive {
		s.logger.Infof("%s does not have an active enrollment in %s. No certificate will be generated.", user.ID, course.ID)
		return OutcomeNotEnrolled, nil
	}

	grade, err := s.repo.CourseGrade.GetForStudent(ctx, nil, user.ID, course.ID)
	if err != nil {
		return OutcomeDropped, err
	}
	passed := grade != nil && grade.Passed
	gradeValue := ""
	if grade != nil {
		gradeValue = grade.PercentString()
	}

	if !mode.IsEligibleForCertificate(s.cfg.Certificate.DisableHonorCertificates) {
		status := constant.CertificateStatusAuditNotPassing
		if passed {
			status = constant.CertificateStatusAuditPassing
		}
		s.logger.Infof("%s is in %s mode in %s, which is not eligible for a certificate.", user.ID, mode, course.ID)
		return OutcomeAudit, s.setExistingStatus(ctx, cert, status, mode, gradeValue, job.Source)
	}

	if mode.RequiresIDVerification() {
		idvStatus, err := s.repo.IDVerification.UserStatus(ctx, nil, user.ID, s.now())
		if err != nil {
			return OutcomeDropped, err
		}

		if idvStatus != constant.IDVerificationApproved {
			s.logger.Infof("%s does not have approved id verification (%s) for %s.", user.ID, idvStatus, course.ID)
			return OutcomeUnverified, s.setExistingStatus(ctx, cert, constant.CertificateStatusUnverified, mode, gradeValue, job.Source)
		}
	}

	isBetaTester, err := s.IsBetaTester(ctx, user.ID, course.ID)
	if err != nil {
		return OutcomeDropped, err
	}

	if isBetaTester {
		s.logger.Infof("%s is a beta tester in %s. No certificate will be generated.", user.ID, course.ID)
		return OutcomeBetaTester, nil
	}

	allowlisted := job.Allowlist
	if !allowlisted {
		if allowlisted, err = s.IsOnAllowlist(ctx, user.ID, course.ID); err != nil {
			return OutcomeDropped, err
		}
	}

	if !allowlisted && !passed {
		if cert != nil && cert.Status.IsPassing() {
			if _, err := s.repo.Certificate.MarkNotPassing(ctx, nil, cert, mode, gradeValue, job.Source); err != nil {
				return OutcomeDropped, err
			}
			s.logger.Infof("Certificate marked not passing for %s : %s", user.ID, course.ID)
		}
		return OutcomeNotPassing, nil
	}

	return s.generate(ctx, user, course, cert, mode, gradeValue, job.Source)
}

// setExistingStatus only touches certificates that already exist.
func (s *Service) setExistingStatus(ctx context.Context, cert *model.Certificate, status constant.CertificateStatus, mode constant.EnrollmentMode, grade, source string) error {
	if cert == nil || cert.Status == status {
		return nil
	}

	cert.Status = status
	cert.Mode = mode
	cert.Grade = grade
	_, err := s.repo.Certificate.Save(ctx, nil, cert, "status_"+status.String(), source)
	return err
}

func (s *Service) generate(ctx context.Context, user *model.User, course *model.CourseOverview, cert *model.Certificate, mode constant.EnrollmentMode, grade, source string) (Outcome, error) {
	if cert == nil {
		cert = &model.Certificate{UserID: user.ID, CourseID: course.ID}
	}
	wasDownloadable := cert.Status == constant.CertificateStatusDownloadable

	cert.Status = constant.CertificateStatusGenerating
	cert.Mode = mode
	cert.Grade = grade
	if cert.VerifyUUID == "" {
		verifyUUID, err := s.newVerifyUUID()
		if err != nil {
			return OutcomeGenerateFailed, err
		}
		cert.VerifyUUID = verifyUUID
	}

	if _, err := s.repo.Certificate.Save(ctx, nil, cert, "generating", source); err != nil {
		return OutcomeGenerateFailed, err
	}

	objectName, err := s.uploadArtifact(ctx, cert)
	if err != nil {
		cert.Status = constant.CertificateStatusError
		if _, saveErr := s.repo.Certificate.Save(ctx, nil, cert, "error", source); saveErr != nil {
			s.logger.Errorf("Failed to mark certificate %s as error: %v", cert.ID, saveErr)
		}
		return OutcomeGenerateFailed, fmt.Errorf("failed to upload certificate artifact: %w", err)
	}

	cert.Status = constant.CertificateStatusDownloadable
	cert.DownloadURL = objectName
	if _, err := s.repo.Certificate.Save(ctx, nil, cert, "generated", source); err != nil {
		return OutcomeGenerateFailed, err
	}

	s.logger.Infof("Generated certificate %s for %s : %s", cert.ID, user.ID, course.ID)

	if !wasDownloadable {
		s.notifyCertificateAvailable(ctx, user, course, cert)
	}

	return OutcomeGenerated, nil
}

// Mail failures are logged. The certificate itself is already generated.
func (s *Service) notifyCertificateAvailable(ctx context.Context, user *model.User, course *model.CourseOverview, cert *model.Certificate) {
	downloadURL, err := s.store.PresignedURL(ctx, cert.DownloadURL, downloadURLExpiry)
	if err != nil {
		s.logger.Errorf("Failed to presign certificate artifact %s: %v", cert.DownloadURL, err)
		downloadURL = ""
	}

	job, err := queue.NewCertificateAvailableMailJob(user.Email, mailer.CertificateAvailableData{
		AppName:     util.GetAppName(),
		Username:    user.Username,
		CourseName:  course.DisplayName,
		VerifyURL:   s.cfg.CertificateVerifyURL(cert.VerifyUUID),
		DownloadURL: downloadURL,
	})
	if err != nil {
		s.logger.Errorf("Failed to build certificate available mail for %s: %v", user.ID, err)
		return
	}

	if err := queue.PublishMailJob(s.publisher, job); err != nil {
		s.logger.Errorf("Failed to publish certificate available mail for %s: %v", user.ID, err)
	}
}
