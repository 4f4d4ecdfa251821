package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
)

type AllowlistRepository struct {
	*baseRepository
}

// Returns nil when the user has no allowlist row for the course.
func (ar AllowlistRepository) Get(ctx context.Context, tx *gorm.DB, userID, courseID string) (*model.CertificateAllowlist, error) {
	ar.logger.Debugf("Get allowlist entry for user: %s, course: %s", userID, courseID)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var entry model.CertificateAllowlist
	if err := db.WithContext(ctx).Model(&model.CertificateAllowlist{}).Where(map[string]any{
		"user_id":   userID,
		"course_id": courseID,
	}).First(&entry).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

func (ar AllowlistRepository) IsOnAllowlist(ctx context.Context, tx *gorm.DB, userID, courseID string) (bool, error) {
	entry, err := ar.Get(ctx, tx, userID, courseID)
	if err != nil {
		return false, err
	}

	return entry != nil && entry.Allowlist, nil
}

// Upsert creates the allowlist row or updates its flag and notes.
func (ar AllowlistRepository) Upsert(ctx context.Context, tx *gorm.DB, userID, courseID string, allowlist bool, notes string) (*model.CertificateAllowlist, error) {
	ar.logger.Debugf("Upsert allowlist entry for user: %s, course: %s, allowlist: %v", userID, courseID, allowlist)

	var entry *model.CertificateAllowlist
	err := ar.withTx(ar.getDB(tx), func(tx *gorm.DB) error {
		existing, err := ar.Get(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &model.CertificateAllowlist{UserID: userID, CourseID: courseID}
		}
		existing.Allowlist = allowlist
		existing.Notes = notes

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		entry = existing
		if existing.ID == "" {
			return tx.WithContext(ctx).Omit("User").Create(existing).Error
		}
		// Select so a false allowlist flag is written too
		return tx.WithContext(ctx).Model(existing).Select("allowlist", "notes", "updated_at").Updates(existing).Error
	})

	return entry, err
}

func (ar AllowlistRepository) Delete(ctx context.Context, tx *gorm.DB, userID, courseID string) (bool, error) {
	ar.logger.Debugf("Delete allowlist entry for user: %s, course: %s", userID, courseID)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Where(map[string]any{
		"user_id":   userID,
		"course_id": courseID,
	}).Delete(&model.CertificateAllowlist{})

	return result.RowsAffected > 0, result.Error
}
