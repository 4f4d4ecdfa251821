package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	*baseRepository
}

// Returns nil when the user never enrolled in the course.
func (er EnrollmentRepository) GetForStudent(ctx context.Context, tx *gorm.DB, userID, courseID string) (*model.Enrollment, error) {
	er.logger.Debugf("Get enrollment for user: %s, course: %s", userID, courseID)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var enrollment model.Enrollment
	if err := db.WithContext(ctx).Model(&model.Enrollment{}).Where(map[string]any{"user_id": userID, "course_id": courseID}).First(&enrollment).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &enrollment, nil
}

func (er EnrollmentRepository) IsEnrolled(ctx context.Context, tx *gorm.DB, userID, courseID string) (bool, error) {
	enrollment, err := er.GetForStudent(ctx, tx, userID, courseID)
	if err != nil {
		return false, err
	}

	return enrollment != nil && enrollment.IsActive, nil
}

// Return enrollment mode and whether the enrollment is active.
// An unknown enrollment yields an empty mode and false.
func (er EnrollmentRepository) EnrollmentModeForUser(ctx context.Context, tx *gorm.DB, userID, courseID string) (constant.EnrollmentMode, bool, error) {
	enrollment, err := er.GetForStudent(ctx, tx, userID, courseID)
	if err != nil {
		return "", false, err
	}
	if enrollment == nil {
		return "", false, nil
	}

	return enrollment.Mode, enrollment.IsActive, nil
}

func (er EnrollmentRepository) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID string) ([]model.Enrollment, error) {
	er.logger.Debugf("List active enrollments for user: %s", userID)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var enrollments []model.Enrollment
	if err := db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at asc").
		Find(&enrollments).Error; err != nil {
		return enrollments, err
	}

	return enrollments, nil
}

type CelebrationRepository struct {
	*baseRepository
}

// Returns nil when no celebration row exists for the enrollment.
func (cr CelebrationRepository) GetByEnrollment(ctx context.Context, tx *gorm.DB, enrollmentID string) (*model.CourseEnrollmentCelebration, error) {
	cr.logger.Debugf("Get celebration for enrollment: %s", enrollmentID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var celebration model.CourseEnrollmentCelebration
	if err := db.WithContext(ctx).Model(&model.CourseEnrollmentCelebration{}).Where(map[string]any{"enrollment_id": enrollmentID}).First(&celebration).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &celebration, nil
}

// Upsert applies the non nil flags. Return the row and whether it was created.
func (cr CelebrationRepository) Upsert(ctx context.Context, tx *gorm.DB, enrollmentID string, firstSection, weeklyGoal *bool) (*model.CourseEnrollmentCelebration, bool, error) {
	cr.logger.Debugf("Upsert celebration for enrollment: %s", enrollmentID)

	var celebration *model.CourseEnrollmentCelebration
	created := false

	err := cr.withTx(cr.getDB(tx), func(tx *gorm.DB) error {
		existing, err := cr.GetByEnrollment(ctx, tx, enrollmentID)
		if err != nil {
			return err
		}

		if existing == nil {
			created = true
			existing = &model.CourseEnrollmentCelebration{EnrollmentID: enrollmentID}
		}
		if firstSection != nil {
			existing.CelebrateFirstSection = *firstSection
		}
		if weeklyGoal != nil {
			existing.CelebrateWeeklyGoal = *weeklyGoal
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		celebration = existing
		return tx.WithContext(ctx).Save(existing).Error
	})

	return celebration, created, err
}
