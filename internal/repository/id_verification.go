package repository

import (
	"context"
	"time"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
)

type IDVerificationRepository struct {
	*baseRepository
}

// UserStatus returns the status of the user's most recent verification attempt.
// An approved attempt past its expiration date reads as expired, no attempt reads as none.
func (ir IDVerificationRepository) UserStatus(ctx context.Context, tx *gorm.DB, userID string, now time.Time) (constant.IDVerificationStatus, error) {
	ir.logger.Debugf("Get id verification status of user: %s", userID)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var verification model.IDVerification
	if err := db.WithContext(ctx).Model(&model.IDVerification{}).Where(map[string]any{
		"user_id": userID,
	}).Order("created_at desc").First(&verification).Error; err != nil {
		if isNotFound(err) {
			return constant.IDVerificationNone, nil
		}
		return constant.IDVerificationNone, err
	}

	if verification.Status == constant.IDVerificationApproved &&
		verification.ExpirationDate != nil && verification.ExpirationDate.Before(now) {
		return constant.IDVerificationExpired, nil
	}

	return verification.Status, nil
}
