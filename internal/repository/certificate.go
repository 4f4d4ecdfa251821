package repository

import (
	"context"
	"time"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	*baseRepository
	log *CertificateLogRepository
}

// CertificateForStudent returns the learner's certificate in a course, or nil when none was ever generated.
func (cr CertificateRepository) CertificateForStudent(ctx context.Context, tx *gorm.DB, userID, courseID string) (*model.Certificate, error) {
	cr.logger.Debugf("Get certificate for user: %s, course: %s", userID, courseID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificate model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{
		"user_id":   userID,
		"course_id": courseID,
	}).Preload("ArtifactFile").First(&certificate).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &certificate, nil
}

func (cr CertificateRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Certificate, error) {
	cr.logger.Debugf("Get certificate by id: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificate model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{"id": id}).
		Preload("ArtifactFile").Preload("User").First(&certificate).Error; err != nil {
		return &certificate, err
	}

	return &certificate, nil
}

// Returns nil when no certificate carries the verify uuid.
func (cr CertificateRepository) GetByVerifyUUID(ctx context.Context, tx *gorm.DB, verifyUUID string) (*model.Certificate, error) {
	cr.logger.Debugf("Get certificate by verify uuid: %s", verifyUUID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificate model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{"verify_uuid": verifyUUID}).
		Preload("ArtifactFile").Preload("User").First(&certificate).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &certificate, nil
}

// Save creates or updates the certificate and records the change in the certificate log.
func (cr CertificateRepository) Save(ctx context.Context, tx *gorm.DB, certificate *model.Certificate, action, source string) (*model.Certificate, error) {
	cr.logger.Debugf("Save certificate for user: %s, course: %s, status: %s", certificate.UserID, certificate.CourseID, certificate.Status)

	err := cr.withTx(cr.getDB(tx), func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		if err := tx.WithContext(ctx).Omit("User", "ArtifactFile").Save(certificate).Error; err != nil {
			return err
		}

		_, err := cr.log.Create(ctx, tx, &model.CertificateLog{
			CertificateID: certificate.ID,
			UserID:        certificate.UserID,
			CourseID:      certificate.CourseID,
			Action:        action,
			Source:        source,
			Context: datatypes.JSONMap{
				"status": certificate.Status.String(),
				"mode":   certificate.Mode.String(),
				"grade":  certificate.Grade,
			},
			Timestamp: time.Now().UTC(),
		})
		return err
	})

	return certificate, err
}

// MarkNotPassing sets the certificate to notpassing with the learner's current mode and grade.
func (cr CertificateRepository) MarkNotPassing(ctx context.Context, tx *gorm.DB, certificate *model.Certificate, mode constant.EnrollmentMode, grade, source string) (*model.Certificate, error) {
	certificate.Status = constant.CertificateStatusNotPassing
	certificate.Grade = grade
	if mode != "" {
		certificate.Mode = mode
	}

	return cr.Save(ctx, tx, certificate, "mark_notpassing", source)
}

// ListStaleGenerating returns certificates stuck in generating since before olderThan.
func (cr CertificateRepository) ListStaleGenerating(ctx context.Context, tx *gorm.DB, olderThan time.Time) ([]*model.Certificate, error) {
	cr.logger.Debugf("List certificates generating since before %s", olderThan)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificates []*model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).
		Where("status = ? AND updated_at < ?", constant.CertificateStatusGenerating, olderThan).
		Order("updated_at asc").
		Find(&certificates).Error; err != nil {
		return certificates, err
	}

	return certificates, nil
}
