package repository

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type baseRepository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

type Repository struct {
	// DB can be used for transaction. Example usage:
	// tx := r.DB.Begin()
	// defer tx.Commit()
	// Then pass tx to the repository function. and use tx.Rollback() if error occurred
	DB                *gorm.DB
	User              *UserRepository
	File              *FileRepository
	CourseOverview    *CourseOverviewRepository
	CourseMode        *CourseModeRepository
	Enrollment        *EnrollmentRepository
	Celebration       *CelebrationRepository
	CourseGrade       *CourseGradeRepository
	AccessRole        *AccessRoleRepository
	IDVerification    *IDVerificationRepository
	Allowlist         *AllowlistRepository
	GenerationSetting *GenerationSettingRepository
	Certificate       *CertificateRepository
	CertificateLog    *CertificateLogRepository
	WaffleSwitch      *WaffleSwitchRepository
	LearningSequence  *LearningSequenceRepository
	ResumePosition    *ResumePositionRepository
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger) *baseRepository {
	return &baseRepository{db: db, logger: logger}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger) *Repository {
	br := newBaseRepository(db, logger)
	certificateLogRepo := &CertificateLogRepository{baseRepository: br}

	return &Repository{
		DB:                db,
		User:              &UserRepository{baseRepository: br},
		File:              &FileRepository{baseRepository: br},
		CourseOverview:    &CourseOverviewRepository{baseRepository: br},
		CourseMode:        &CourseModeRepository{baseRepository: br},
		Enrollment:        &EnrollmentRepository{baseRepository: br},
		Celebration:       &CelebrationRepository{baseRepository: br},
		CourseGrade:       &CourseGradeRepository{baseRepository: br},
		AccessRole:        &AccessRoleRepository{baseRepository: br},
		IDVerification:    &IDVerificationRepository{baseRepository: br},
		Allowlist:         &AllowlistRepository{baseRepository: br},
		GenerationSetting: &GenerationSettingRepository{baseRepository: br},
		Certificate:       &CertificateRepository{baseRepository: br, log: certificateLogRepo},
		CertificateLog:    certificateLogRepo,
		WaffleSwitch:      &WaffleSwitchRepository{baseRepository: br},
		LearningSequence:  &LearningSequenceRepository{baseRepository: br},
		ResumePosition:    &ResumePositionRepository{baseRepository: br},
	}
}

// Note: GORM perform write (create/update/delete) operations run inside a transaction to ensure data consistency | So this function is helpful only if we disable auto transaction
// Docs: https://gorm.io/docs/transactions.html#Disable-Default-Transaction
func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Errorf("withTx Transaction error: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}

// Not found is not an error for lookups that may legitimately be empty.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
