package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
)

type ResumePositionRepository struct {
	*baseRepository
}

func (rr ResumePositionRepository) GetForStudent(ctx context.Context, tx *gorm.DB, userID, courseID string) (*model.CourseResumePosition, error) {
	rr.logger.Debugf("Get resume position for user: %s, course: %s", userID, courseID)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var position model.CourseResumePosition
	if err := db.WithContext(ctx).Model(&model.CourseResumePosition{}).Where(map[string]any{
		"user_id":   userID,
		"course_id": courseID,
	}).First(&position).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &position, nil
}

func (rr ResumePositionRepository) Save(ctx context.Context, tx *gorm.DB, position *model.CourseResumePosition) error {
	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Save(position).Error
}
