package route

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	appcontext "github.com/SeakMengs/CourseCert/internal/app_context"
	"github.com/SeakMengs/CourseCert/internal/auth"
	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/queue"
	ratelimiter "github.com/SeakMengs/CourseCert/internal/rate_limiter"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/testutil"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

const testCourseID = "course-v1:edX+DemoX+Demo_Course"

var registerValidations sync.Once

type fakePublisher struct {
	mu       sync.Mutex
	messages map[queue.QueueName][][]byte
}

func (p *fakePublisher) Publish(queueName queue.QueueName, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[queueName] = append(p.messages[queueName], body)
	return nil
}

func (p *fakePublisher) count(queueName queue.QueueName) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[queueName])
}

type httpEnv struct {
	router    *gin.Engine
	repo      *repository.Repository
	jwt       *auth.JWT
	publisher *fakePublisher
}

func newHTTPEnv(t *testing.T, rateLimit config.RateLimiterConfig) *httpEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registerValidations.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		require.True(t, ok)
		require.NoError(t, util.RegisterCustomValidations(v))
	})

	cfg := &config.Config{
		FrontURL: "https://learn.test",
		Auth:     config.AuthConfig{JWT_SECRET: "route-test-secret"},
	}
	logger := testutil.NewLogger(t)
	repo := repository.NewRepository(testutil.NewDB(t), logger)
	publisher := &fakePublisher{messages: make(map[queue.QueueName][][]byte)}
	certificates := certificate.NewService(cfg, repo, logger, publisher, nil)
	jwtService := auth.NewJwt(cfg.Auth, logger)

	app := &appcontext.Application{
		Config:       cfg,
		Logger:       logger,
		Repository:   repo,
		JWTService:   jwtService,
		Publisher:    publisher,
		Certificates: certificates,
		Courseware:   courseware.NewService(cfg, repo, certificates, logger),
	}

	m := middleware.NewMiddleware(app, ratelimiter.NewRateLimiter(rateLimit, logger))
	r := gin.New()
	r.Use(m.RequestIDMiddleware, m.RateLimiterMiddleware)
	Register(r, controller.NewController(app), m)

	return &httpEnv{router: r, repo: repo, jwt: jwtService, publisher: publisher}
}

func newDefaultHTTPEnv(t *testing.T) *httpEnv {
	return newHTTPEnv(t, config.RateLimiterConfig{RequestsPerTimeFrame: 1000, TimeFrame: time.Minute, Enabled: true})
}

func (e *httpEnv) createUser(t *testing.T, username string, isStaff bool) *model.User {
	t.Helper()
	return testutil.Create(t, e.repo.DB, &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		IsStaff:   isStaff,
	})
}

func (e *httpEnv) createCourse(t *testing.T) *model.CourseOverview {
	t.Helper()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
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

func (e *httpEnv) enroll(t *testing.T, userID string, mode constant.EnrollmentMode) *model.Enrollment {
	t.Helper()
	return testutil.Create(t, e.repo.DB, &model.Enrollment{
		UserID:   userID,
		CourseID: testCourseID,
		Mode:     mode,
		IsActive: true,
	})
}

func payloadFor(user *model.User) auth.JWTPayload {
	return auth.JWTPayload{ID: user.ID, Email: user.Email, Username: user.Username, IsStaff: user.IsStaff}
}

func (e *httpEnv) accessToken(t *testing.T, user *model.User) string {
	t.Helper()
	_, access, err := e.jwt.GenerateRefreshAndAccessToken(payloadFor(user))
	require.NoError(t, err)
	return "Bearer " + *access
}

func (e *httpEnv) refreshToken(t *testing.T, user *model.User) string {
	t.Helper()
	refresh, _, err := e.jwt.GenerateRefreshAndAccessToken(payloadFor(user))
	require.NoError(t, err)
	return "Refresh " + *refresh
}

func (e *httpEnv) do(t *testing.T, method, path, authorization string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var res apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var data T
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data), rec.Body.String())
	return data
}

