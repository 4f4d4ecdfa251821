package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/pkg/hashutil"
	"gorm.io/gorm"
)

type LearningSequenceRepository struct {
	*baseRepository
}

func (lr LearningSequenceRepository) GetByUsageKey(ctx context.Context, tx *gorm.DB, usageKey string) (*model.LearningSequence, error) {
	lr.logger.Debugf("Get learning sequence by usage key: %s", usageKey)

	return lr.getBy(ctx, tx, "usage_key", usageKey)
}

func (lr LearningSequenceRepository) GetByUsageKeyHash(ctx context.Context, tx *gorm.DB, hash string) (*model.LearningSequence, error) {
	lr.logger.Debugf("Get learning sequence by usage key hash: %s", hash)

	return lr.getBy(ctx, tx, "usage_key_hash", hash)
}

func (lr LearningSequenceRepository) getBy(ctx context.Context, tx *gorm.DB, column, value string) (*model.LearningSequence, error) {
	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var sequence model.LearningSequence
	if err := db.WithContext(ctx).Model(&model.LearningSequence{}).Where(map[string]any{
		column: value,
	}).First(&sequence).Error; err != nil {
		return nil, err
	}

	return &sequence, nil
}

// Create fills in the usage key hash before inserting.
func (lr LearningSequenceRepository) Create(ctx context.Context, tx *gorm.DB, sequence *model.LearningSequence) (*model.LearningSequence, error) {
	lr.logger.Debugf("Create learning sequence: %s", sequence.UsageKey)

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	sequence.UsageKeyHash = hashutil.HashUsageKey(sequence.UsageKey)
	if err := db.WithContext(ctx).Model(&model.LearningSequence{}).Create(sequence).Error; err != nil {
		return sequence, err
	}

	return sequence, nil
}
