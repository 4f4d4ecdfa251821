package repository

import (
	"context"

	constant "github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WaffleSwitchRepository struct {
	*baseRepository
}

// IsEnabled reports whether the named switch exists and is active.
func (wr WaffleSwitchRepository) IsEnabled(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	db := wr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var sw model.WaffleSwitch
	if err := db.WithContext(ctx).Model(&model.WaffleSwitch{}).Where(map[string]any{
		"name": name,
	}).First(&sw).Error; err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return sw.Active, nil
}

func (wr WaffleSwitchRepository) Set(ctx context.Context, tx *gorm.DB, name string, active bool, note string) error {
	wr.logger.Debugf("Set switch %s to %v", name, active)

	db := wr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"active", "note", "updated_at"}),
	}).Create(&model.WaffleSwitch{
		Name:   name,
		Active: active,
		Note:   note,
	}).Error
}

func (wr WaffleSwitchRepository) List(ctx context.Context, tx *gorm.DB) ([]*model.WaffleSwitch, error) {
	db := wr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var switches []*model.WaffleSwitch
	if err := db.WithContext(ctx).Model(&model.WaffleSwitch{}).Order("name asc").Find(&switches).Error; err != nil {
		return switches, err
	}

	return switches, nil
}
