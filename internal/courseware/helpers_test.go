package courseware

import (
	"context"
	"testing"
	"time"

	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testCourseID = "course-v1:edX+DemoX+Demo_Course"

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc  *Service
	repo *repository.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{FrontURL: "https://learn.test/"}
	logger := testutil.NewLogger(t)
	repo := repository.NewRepository(testutil.NewDB(t), logger)

	svc := NewService(cfg, repo, certificate.NewService(cfg, repo, logger, nil, nil), logger)
	svc.now = func() time.Time { return fixedNow }

	return &testEnv{svc: svc, repo: repo}
}

func (e *testEnv) createUser(t *testing.T, username string, isStaff bool) *model.User {
	t.Helper()
	return testutil.Create(t, e.repo.DB, &model.User{
		Username: username,
		Email:    username + "@example.com",
		IsStaff:  isStaff,
	})
}

func (e *testEnv) createCourse(t *testing.T, start time.Time) *model.CourseOverview {
	t.Helper()
	end := start.AddDate(0, 1, 0)
	return testutil.Create(t, e.repo.DB, &model.CourseOverview{
		ID:                          testCourseID,
		DisplayName:                 "Demo Course",
		Org:                         "edX",
		Number:                      "DemoX",
		Start:                       &start,
		End:                         &end,
		CertificatesDisplayBehavior: constant.DisplayBehaviorEnd,
	})
}

func (e *testEnv) enroll(t *testing.T, userID string, mode constant.EnrollmentMode, active bool) *model.Enrollment {
	t.Helper()
	return testutil.Create(t, e.repo.DB, &model.Enrollment{
		UserID:   userID,
		CourseID: testCourseID,
		Mode:     mode,
		IsActive: active,
	})
}

func (e *testEnv) viewer(user *model.User) Viewer {
	return Viewer{ID: user.ID, Username: user.Username, IsStaff: user.IsStaff}
}

func (e *testEnv) setAutoGeneration(t *testing.T, enabled bool) {
	t.Helper()
	require.NoError(t, e.repo.WaffleSwitch.Set(context.Background(), nil, constant.SwitchAutoCertificateGeneration, enabled, ""))
}
