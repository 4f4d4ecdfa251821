package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
)

type CertificateLogRepository struct {
	*baseRepository
}

func (clr CertificateLogRepository) Create(ctx context.Context, tx *gorm.DB, log *model.CertificateLog) (*model.CertificateLog, error) {
	db := clr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.CertificateLog{}).Create(log).Error; err != nil {
		return log, err
	}

	return log, nil
}

func (clr CertificateLogRepository) GetByCertificateId(ctx context.Context, tx *gorm.DB, certificateID string) ([]*model.CertificateLog, error) {
	clr.logger.Debugf("Get certificate logs by certificate id: %s", certificateID)

	db := clr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var logs []*model.CertificateLog
	if err := db.WithContext(ctx).Model(&model.CertificateLog{}).Where(map[string]any{
		"certificate_id": certificateID,
	}).Order("timestamp asc").Find(&logs).Error; err != nil {
		return logs, err
	}

	return logs, nil
}
