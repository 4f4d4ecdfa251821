// Package certificate decides when course certificates are generated, updated or
// marked not passing, and exposes the eligibility and date rules used by the api.
package certificate

import (
	"errors"
	"time"

	"github.com/SeakMengs/CourseCert/internal/config"
	filestorage "github.com/SeakMengs/CourseCert/internal/file_storage"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrSelfGenerationDisabled = errors.New("self generated certificates are disabled for this course")
	ErrUserNotFound           = errors.New("user not found")
	ErrCourseNotFound         = errors.New("course not found")
)

type Service struct {
	cfg       *config.Config
	repo      *repository.Repository
	logger    *zap.SugaredLogger
	publisher queue.Publisher
	store     filestorage.ObjectStore
	now       func() time.Time
}

// NewService wires the rules to their storage. store may be nil for processes
// that never generate certificates, such as the signal consumer.
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.SugaredLogger, publisher queue.Publisher, store filestorage.ObjectStore) *Service {
	return &Service{
		cfg:       cfg,
		repo:      repo,
		logger:    logger,
		publisher: publisher,
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
