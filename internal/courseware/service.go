// Package courseware serves the course, sequence, resume, celebration and
// course home metadata read by the learning frontend.
package courseware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/pkg/opaquekey"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCourseKey         = errors.New("invalid course key")
	ErrInvalidSequenceKey       = errors.New("invalid usage key or usage key hash")
	ErrCourseNotFound           = errors.New("course not found")
	ErrNotEnrolled              = errors.New("user is not enrolled in the course")
	ErrNoValidCelebrationFields = errors.New("no valid celebration fields were provided")
)

// Viewer is the authenticated user a response is built for.
type Viewer struct {
	ID       string
	Username string
	IsStaff  bool
}

type Service struct {
	cfg          *config.Config
	repo         *repository.Repository
	certificates *certificate.Service
	logger       *zap.SugaredLogger
	now          func() time.Time
}

func NewService(cfg *config.Config, repo *repository.Repository, certificates *certificate.Service, logger *zap.SugaredLogger) *Service {
	return &Service{
		cfg:          cfg,
		repo:         repo,
		certificates: certificates,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Course resolves a course key to its overview. Legacy keys are accepted.
func (s *Service) Course(ctx context.Context, courseKey string) (*model.CourseOverview, error) {
	key, err := opaquekey.ParseCourseKey(courseKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCourseKey, err)
	}

	course, err := s.repo.CourseOverview.GetById(ctx, nil, key.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, key)
		}
		return nil, err
	}

	return course, nil
}
