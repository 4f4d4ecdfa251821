package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
)

type CourseOverviewRepository struct {
	*baseRepository
}

func (cr CourseOverviewRepository) GetById(ctx context.Context, tx *gorm.DB, courseID string) (*model.CourseOverview, error) {
	cr.logger.Debugf("Get course overview by id: %s", courseID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var course model.CourseOverview
	if err := db.WithContext(ctx).Model(&model.CourseOverview{}).Where("id = ?", courseID).First(&course).Error; err != nil {
		return &course, err
	}

	return &course, nil
}

type CourseModeRepository struct {
	*baseRepository
}

// Returns nil when the course does not offer the mode.
func (cmr CourseModeRepository) GetByCourseAndMode(ctx context.Context, tx *gorm.DB, courseID string, mode constant.EnrollmentMode) (*model.CourseMode, error) {
	cmr.logger.Debugf("Get course mode %s for course: %s", mode, courseID)

	db := cmr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var courseMode model.CourseMode
	if err := db.WithContext(ctx).Model(&model.CourseMode{}).Where(map[string]any{"course_id": courseID, "mode_slug": mode}).First(&courseMode).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &courseMode, nil
}

type CourseGradeRepository struct {
	*baseRepository
}

// Returns nil when the learner has no persisted grade yet.
func (gr CourseGradeRepository) GetForStudent(ctx context.Context, tx *gorm.DB, userID, courseID string) (*model.CourseGrade, error) {
	gr.logger.Debugf("Get course grade for user: %s, course: %s", userID, courseID)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var grade model.CourseGrade
	if err := db.WithContext(ctx).Model(&model.CourseGrade{}).Where(map[string]any{"user_id": userID, "course_id": courseID}).First(&grade).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &grade, nil
}

type AccessRoleRepository struct {
	*baseRepository
}

func (ar AccessRoleRepository) HasRole(ctx context.Context, tx *gorm.DB, userID, courseID string, role constant.CourseAccessRole) (bool, error) {
	ar.logger.Debugf("Check role %s for user: %s, course: %s", role, userID, courseID)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var count int64
	if err := db.WithContext(ctx).Model(&model.CourseAccessRole{}).Where(map[string]any{"user_id": userID, "course_id": courseID, "role": role}).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (ar AccessRoleRepository) ListRoles(ctx context.Context, tx *gorm.DB, userID, courseID string) ([]constant.CourseAccessRole, error) {
	ar.logger.Debugf("List roles for user: %s, course: %s", userID, courseID)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var roles []constant.CourseAccessRole
	if err := db.WithContext(ctx).Model(&model.CourseAccessRole{}).
		Where(map[string]any{"user_id": userID, "course_id": courseID}).
		Order("role asc").
		Pluck("role", &roles).Error; err != nil {
		return roles, err
	}

	return roles, nil
}
