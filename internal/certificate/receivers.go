package certificate

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/signal"
)

// Register connects the certificate receivers to the dispatcher.
func (s *Service) Register(d *signal.Dispatcher) {
	d.Connect(signal.CoursePacingChanged, "update_cert_settings_on_pacing_change", receiver(s.OnCoursePacingChanged))
	d.Connect(signal.AllowlistRowSaved, "append_certificate_allowlist", receiver(s.OnAllowlistRowSaved))
	d.Connect(signal.GradeNowPassed, "new_passing_learner", receiver(s.OnGradeNowPassed))
	d.Connect(signal.GradeNowFailed, "new_failing_learner", receiver(s.OnGradeNowFailed))
	d.Connect(signal.LearnerNowVerified, "learner_track_changed", receiver(s.OnLearnerNowVerified))
	d.Connect(signal.EnrollmentTrackUpdated, "enrollment_track_updated", receiver(s.OnEnrollmentTrackUpdated))
}

func receiver[E signal.Event](handle func(ctx context.Context, event E) error) signal.Receiver {
	return func(ctx context.Context, event signal.Event) error {
		typed, ok := event.(E)
		if !ok {
			return fmt.Errorf("unexpected event %T for %s", event, event.SignalName())
		}
		return handle(ctx, typed)
	}
}

// Self generation follows the course pacing.
func (s *Service) OnCoursePacingChanged(ctx context.Context, event signal.CoursePacingChangedEvent) error {
	if err := s.repo.GenerationSetting.SetSelfGenerationEnabled(ctx, nil, event.CourseID, event.SelfPaced); err != nil {
		return err
	}

	s.logger.Infof("Certificate Generation Setting Toggled for %s via pacing change", event.CourseID)
	return nil
}

func (s *Service) OnAllowlistRowSaved(ctx context.Context, event signal.AllowlistRowSavedEvent) error {
	enabled, err := s.AutoCertificateGenerationEnabled(ctx)
	if err != nil || !enabled {
		return err
	}

	allowlisted, err := s.IsOnAllowlist(ctx, event.UserID, event.CourseID)
	if err != nil || !allowlisted {
		return err
	}

	s.logger.Infof("User %s is now on the allowlist for course %s. Attempt will be made to generate an allowlist certificate.", event.UserID, event.CourseID)
	_, err = s.GenerateAllowlistCertificateTask(ctx, event.UserID, event.CourseID, constant.CertificateSourceAllowlist)
	return err
}

func (s *Service) OnGradeNowPassed(ctx context.Context, event signal.GradeNowPassedEvent) error {
	enabled, err := s.AutoCertificateGenerationEnabled(ctx)
	if err != nil || !enabled {
		return err
	}

	cert, err := s.repo.Certificate.CertificateForStudent(ctx, nil, event.UserID, event.CourseID)
	if err != nil {
		return err
	}

	if cert != nil && cert.Status.IsPassing() {
		s.logger.Infof("The cert status is already passing for user %s : %s. Passing grade signal will be ignored.", event.UserID, event.CourseID)
		return nil
	}

	s.logger.Infof("Attempt will be made to generate a course certificate for %s : %s as a passing grade was received.", event.UserID, event.CourseID)
	_, err = s.GenerateCertificateTask(ctx, event.UserID, event.CourseID, constant.CertificateSourcePassingSignal)
	return err
}

// A failing grade never touches allowlisted learners, whether or not auto generation is on.
func (s *Service) OnGradeNowFailed(ctx context.Context, event signal.GradeNowFailedEvent) error {
	allowlisted, err := s.IsOnAllowlist(ctx, event.UserID, event.CourseID)
	if err != nil {
		return err
	}

	if allowlisted {
		s.logger.Infof("User %s is on the allowlist for %s. The failing grade will not affect the certificate.", event.UserID, event.CourseID)
		return nil
	}

	cert, err := s.repo.Certificate.CertificateForStudent(ctx, nil, event.UserID, event.CourseID)
	if err != nil || cert == nil || !cert.Status.IsPassing() {
		return err
	}

	mode, _, err := s.repo.Enrollment.EnrollmentModeForUser(ctx, nil, event.UserID, event.CourseID)
	if err != nil {
		return err
	}

	grade := model.CourseGrade{Percent: event.Percent}.PercentString()
	if _, err := s.repo.Certificate.MarkNotPassing(ctx, nil, cert, mode, grade, constant.CertificateSourceNotPassingSignal); err != nil {
		return err
	}

	s.logger.Infof("Certificate marked not passing for %s : %s via failing grade", event.UserID, event.CourseID)
	return nil
}

func (s *Service) OnLearnerNowVerified(ctx context.Context, event signal.LearnerNowVerifiedEvent) error {
	enabled, err := s.AutoCertificateGenerationEnabled(ctx)
	if err != nil || !enabled {
		return err
	}

	enrollments, err := s.repo.Enrollment.ListActiveByUser(ctx, nil, event.UserID)
	if err != nil {
		return err
	}

	status, err := s.repo.IDVerification.UserStatus(ctx, nil, event.UserID, s.now())
	if err != nil {
		return err
	}

	var errs []error
	for _, enrollment := range enrollments {
		s.logger.Infof("Attempt will be made to generate a course certificate for %s : %s. Id verification status is %s", event.UserID, enrollment.CourseID, status)
		if _, err := s.GenerateCertificateTask(ctx, event.UserID, enrollment.CourseID, constant.CertificateSourceVerified); err != nil {
			errs = append(errs, fmt.Errorf("failed to enqueue certificate for course %s: %w", enrollment.CourseID, err))
		}
	}

	return errors.Join(errs...)
}

// Certificates are never revoked on a track change, even when moving to audit.
func (s *Service) OnEnrollmentTrackUpdated(ctx context.Context, event signal.EnrollmentTrackUpdatedEvent) error {
	if !event.Mode.IsEligibleForCertificate(s.cfg.Certificate.DisableHonorCertificates) {
		return nil
	}

	s.logger.Infof("Attempt will be made to generate a course certificate for %s : %s since the enrollment mode is now %s.", event.UserID, event.CourseID, event.Mode)
	_, err := s.GenerateCertificateTask(ctx, event.UserID, event.CourseID, constant.CertificateSourceTrackChange)
	return err
}

// HandleSignalJob decodes a queued envelope and dispatches it. Return shouldRequeue, err.
// Unknown or malformed signals are dropped.
func HandleSignalJob(d *signal.Dispatcher) func(ctx context.Context, envelope signal.Envelope) (bool, error) {
	return func(ctx context.Context, envelope signal.Envelope) (bool, error) {
		event, err := envelope.Decode()
		if err != nil {
			return false, err
		}

		if err := signal.FirstError(d.Send(ctx, event)); err != nil {
			return true, err
		}

		return false, nil
	}
}
