package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenerationSettingRepository struct {
	*baseRepository
}

// Missing settings read as disabled.
func (gr GenerationSettingRepository) IsSelfGenerationEnabled(ctx context.Context, tx *gorm.DB, courseID string) (bool, error) {
	gr.logger.Debugf("Get self generation setting of course: %s", courseID)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var setting model.CertificateGenerationCourseSetting
	if err := db.WithContext(ctx).Model(&model.CertificateGenerationCourseSetting{}).Where(map[string]any{
		"course_id": courseID,
	}).First(&setting).Error; err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return setting.SelfGenerationEnabled, nil
}

func (gr GenerationSettingRepository) SetSelfGenerationEnabled(ctx context.Context, tx *gorm.DB, courseID string, enabled bool) error {
	gr.logger.Debugf("Set self generation of course: %s to %v", courseID, enabled)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"self_generation_enabled", "updated_at"}),
	}).Create(&model.CertificateGenerationCourseSetting{
		CourseID:              courseID,
		SelfGenerationEnabled: enabled,
	}).Error
}
