package certificate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const testCourseID = "course-v1:edX+DemoX+Demo_Course"

type fakePublisher struct {
	mu       sync.Mutex
	messages map[queue.QueueName][][]byte
	err      error

	// rejectCourse fails only the publishes whose body names this course.
	rejectCourse string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{messages: make(map[queue.QueueName][][]byte)}
}

func (p *fakePublisher) Publish(queueName queue.QueueName, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	if p.rejectCourse != "" && bytes.Contains(body, []byte(p.rejectCourse)) {
		return errors.New("publish rejected")
	}
	p.messages[queueName] = append(p.messages[queueName], body)
	return nil
}

func (p *fakePublisher) generateJobs(t *testing.T) []queue.CertificateGeneratePayload {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()

	var jobs []queue.CertificateGeneratePayload
	for _, body := range p.messages[queue.QueueCertificateGenerate] {
		var job queue.CertificateGeneratePayload
		require.NoError(t, json.Unmarshal(body, &job))
		jobs = append(jobs, job)
	}
	return jobs
}

func (p *fakePublisher) mailJobs(t *testing.T) []queue.MailJobPayload {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()

	var jobs []queue.MailJobPayload
	for _, body := range p.messages[queue.QueueMail] {
		var job queue.MailJobPayload
		require.NoError(t, json.Unmarshal(body, &job))
		jobs = append(jobs, job)
	}
	return jobs
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Bucket() string { return "test-bucket" }

func (s *fakeStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}
	s.objects[objectName] = data
	return int64(len(data)), nil
}

func (s *fakeStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if _, ok := s.objects[objectName]; !ok {
		return "", errors.New("no such object")
	}
	return "https://storage.test/" + objectName, nil
}

type testEnv struct {
	svc       *Service
	repo      *repository.Repository
	publisher *fakePublisher
	store     *fakeStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		FrontURL: "https://learn.test",
		Certificate: config.CertificateConfig{
			GeneratingTimeout: 30 * time.Minute,
			QRCodeSize:        64,
		},
	}
	logger := testutil.NewLogger(t)
	repo := repository.NewRepository(testutil.NewDB(t), logger)
	publisher := newFakePublisher()
	store := newFakeStore()

	svc := NewService(cfg, repo, logger, publisher, store)
	svc.now = func() time.Time { return fixedNow }

	return &testEnv{svc: svc, repo: repo, publisher: publisher, store: store}
}

func (e *testEnv) setAutoGeneration(t *testing.T, enabled bool) {
	t.Helper()
	require.NoError(t, e.repo.WaffleSwitch.Set(context.Background(), nil, constant.SwitchAutoCertificateGeneration, enabled, ""))
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	return testutil.Create(t, e.repo.DB, &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "Learner",
	})
}

func (e *testEnv) createCourse(t *testing.T) *model.CourseOverview {
	t.Helper()
	start := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2017, 1, 31, 0, 0, 0, 0, time.UTC)
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

func (e *testEnv) setGrade(t *testing.T, userID string, percent float64, passed bool) {
	t.Helper()
	testutil.Create(t, e.repo.DB, &model.CourseGrade{
		UserID:   userID,
		CourseID: testCourseID,
		Percent:  percent,
		Passed:   passed,
	})
}

func (e *testEnv) allowlist(t *testing.T, userID string) {
	t.Helper()
	_, err := e.repo.Allowlist.Upsert(context.Background(), nil, userID, testCourseID, true, "")
	require.NoError(t, err)
}

func (e *testEnv) createCertificate(t *testing.T, userID string, status constant.CertificateStatus) *model.Certificate {
	t.Helper()
	verifyUUID, err := e.svc.newVerifyUUID()
	require.NoError(t, err)

	cert, err := e.repo.Certificate.Save(context.Background(), nil, &model.Certificate{
		UserID:     userID,
		CourseID:   testCourseID,
		Status:     status,
		Mode:       constant.EnrollmentModeVerified,
		Grade:      "0.90",
		VerifyUUID: verifyUUID,
	}, "created", constant.CertificateSourceManual)
	require.NoError(t, err)
	return cert
}

func (e *testEnv) certificate(t *testing.T, userID string) *model.Certificate {
	t.Helper()
	cert, err := e.repo.Certificate.CertificateForStudent(context.Background(), nil, userID, testCourseID)
	require.NoError(t, err)
	return cert
}
