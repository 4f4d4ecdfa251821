package route

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/signal"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	env := newDefaultHTTPEnv(t)

	rec := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 21)
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newDefaultHTTPEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestAuthRequired(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)

	paths := []string{
		"/api/v1/me",
		"/api/courseware/course/" + testCourseID,
		"/api/courseware/resume/" + testCourseID,
		"/api/course_home/v1/course_metadata/" + testCourseID,
	}
	for _, path := range paths {
		rec := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/me", "Bearer not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	user := env.createUser(t, "learner", false)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/jwt/refresh", env.refreshToken(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tokens := decodeData[map[string]string](t, rec)
	assert.NotEmpty(t, tokens["accessToken"])
	assert.NotEmpty(t, tokens["refreshToken"])

	rec = env.do(t, http.MethodGet, "/api/v1/me", "Bearer "+tokens["accessToken"], nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// An access token cannot be used as a refresh token.
	_, access, err := env.jwt.GenerateRefreshAndAccessToken(payloadFor(user))
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/api/v1/auth/jwt/refresh", "Refresh "+*access, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCoursewareCourse(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	user := env.createUser(t, "learner", false)
	token := env.accessToken(t, user)

	rec := env.do(t, http.MethodGet, "/api/courseware/course/nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/courseware/course/"+testCourseID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env.createCourse(t)
	env.enroll(t, user.ID, constant.EnrollmentModeVerified)

	rec = env.do(t, http.MethodGet, "/api/courseware/course/"+testCourseID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	info := decodeData[courseware.CoursewareInfo](t, rec)
	assert.Equal(t, testCourseID, info.ID)
	assert.Equal(t, "Demo Course", info.Name)
	assert.True(t, info.Enrollment.IsActive)
	assert.Equal(t, constant.EnrollmentModeVerified, info.Enrollment.Mode)
	assert.False(t, info.IsStaff)
}

func TestSequenceMetadataRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	token := env.accessToken(t, env.createUser(t, "learner", false))

	usageKey := "block-v1:edX+DemoX+Demo_Course+type@sequential+block@intro"
	sequence, err := env.repo.LearningSequence.Create(context.Background(), nil, &model.LearningSequence{
		CourseID: testCourseID,
		UsageKey: usageKey,
		Title:    "Introduction",
	})
	require.NoError(t, err)

	for _, keyOrHash := range []string{usageKey, sequence.UsageKeyHash} {
		rec := env.do(t, http.MethodGet, "/api/courseware/sequence/"+keyOrHash, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := decodeData[courseware.LearningSequenceData](t, rec)
		assert.Equal(t, usageKey, data.UsageKey)
		assert.Equal(t, "Introduction", data.Title)
	}

	rec := env.do(t, http.MethodGet, "/api/courseware/sequence/unknownHash", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/courseware/sequence/bad!hash", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)
	token := env.accessToken(t, env.createUser(t, "learner", false))

	rec := env.do(t, http.MethodGet, "/api/courseware/resume/"+testCourseID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resume := decodeData[courseware.ResumeBlock](t, rec)
	assert.Empty(t, resume.BlockID)
	assert.Empty(t, resume.SectionID)
	assert.Empty(t, resume.UnitID)
}

func TestCelebrationRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)
	user := env.createUser(t, "learner", false)
	token := env.accessToken(t, user)
	path := "/api/courseware/celebration/" + testCourseID

	rec := env.do(t, http.MethodPost, path, token, gin.H{"unknown": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, path, token, gin.H{"first_section": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env.enroll(t, user.ID, constant.EnrollmentModeAudit)

	rec = env.do(t, http.MethodPost, path, token, gin.H{"first_section": true})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, path, token, gin.H{"weekly_goal": true})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/course_home/v1/course_metadata/"+testCourseID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	metadata := decodeData[courseware.CourseHomeMetadata](t, rec)
	assert.True(t, metadata.Celebrations.FirstSection)
	assert.True(t, metadata.Celebrations.WeeklyGoal)
}

func TestCourseHomeMetadataRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)
	learner := env.createUser(t, "learner", false)
	staff := env.createUser(t, "staff", true)
	env.enroll(t, learner.ID, constant.EnrollmentModeAudit)
	path := "/api/course_home/v1/course_metadata/" + testCourseID

	rec := env.do(t, http.MethodGet, path, env.accessToken(t, learner), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	metadata := decodeData[courseware.CourseHomeMetadata](t, rec)
	assert.Equal(t, testCourseID, metadata.CourseID)
	assert.Equal(t, "learner", metadata.Username)
	assert.True(t, metadata.IsEnrolled)
	assert.True(t, metadata.CanLoadCourseware)
	assert.Len(t, metadata.Tabs, 3)

	rec = env.do(t, http.MethodGet, path, env.accessToken(t, staff), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	metadata = decodeData[courseware.CourseHomeMetadata](t, rec)
	assert.True(t, metadata.IsStaff)
	assert.False(t, metadata.IsEnrolled)
	assert.True(t, metadata.CourseAccess.HasAccess)
	assert.Len(t, metadata.Tabs, 4)
}

func TestCertificateStatusRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)
	learner := env.createUser(t, "learner", false)
	other := env.createUser(t, "other", false)
	staff := env.createUser(t, "staff", true)
	path := "/api/certificates/v1/users/" + learner.ID + "/courses/" + testCourseID

	rec := env.do(t, http.MethodGet, path, env.accessToken(t, other), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, path, env.accessToken(t, learner), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cert := model.Certificate{
		UserID:     learner.ID,
		CourseID:   testCourseID,
		Status:     constant.CertificateStatusDownloadable,
		Mode:       constant.EnrollmentModeVerified,
		Grade:      "0.9",
		VerifyUUID: "0123456789abcdef0123456789abcdef",
	}
	require.NoError(t, env.repo.DB.Create(&cert).Error)

	for _, user := range []*model.User{learner, staff} {
		rec = env.do(t, http.MethodGet, path, env.accessToken(t, user), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var data struct {
			UserID      string `json:"userId"`
			CourseID    string `json:"courseId"`
			Certificate struct {
				Status     constant.CertificateStatus `json:"certStatus"`
				VerifyUUID string                     `json:"verifyUuid"`
			} `json:"certificate"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
		assert.Equal(t, learner.ID, data.UserID)
		assert.Equal(t, testCourseID, data.CourseID)
		assert.Equal(t, constant.CertificateStatusDownloadable, data.Certificate.Status)
		assert.Equal(t, cert.VerifyUUID, data.Certificate.VerifyUUID)
	}
}

func TestRequestGenerationRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)
	learner := env.createUser(t, "learner", false)
	token := env.accessToken(t, learner)
	path := "/api/certificates/v1/generate/" + testCourseID

	rec := env.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, env.publisher.count(queue.QueueCertificateGenerate))

	require.NoError(t, env.repo.GenerationSetting.SetSelfGenerationEnabled(context.Background(), nil, testCourseID, true))

	rec = env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	data := decodeData[map[string]any](t, rec)
	assert.Equal(t, testCourseID, data["courseId"])
	assert.Equal(t, true, data["enqueued"])
	assert.Equal(t, 1, env.publisher.count(queue.QueueCertificateGenerate))
}

func TestAllowlistRoutes(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	env.createCourse(t)
	learner := env.createUser(t, "learner", false)
	staffToken := env.accessToken(t, env.createUser(t, "staff", true))
	body := gin.H{"userId": learner.ID, "courseKey": testCourseID, "notes": "granted by instructor"}
	deletePath := "/api/certificates/v1/allowlist/" + learner.ID + "/courses/" + testCourseID

	rec := env.do(t, http.MethodPost, "/api/certificates/v1/allowlist", env.accessToken(t, learner), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/certificates/v1/allowlist", staffToken, gin.H{"userId": learner.ID, "courseKey": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/certificates/v1/allowlist", staffToken, gin.H{"userId": "missing", "courseKey": testCourseID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/certificates/v1/allowlist", staffToken, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, env.publisher.count(queue.QueueCertificateSignal))

	var envelope signal.Envelope
	require.NoError(t, json.Unmarshal(env.publisher.messages[queue.QueueCertificateSignal][0], &envelope))
	event, err := envelope.Decode()
	require.NoError(t, err)
	assert.Equal(t, signal.AllowlistRowSavedEvent{UserID: learner.ID, CourseID: testCourseID}, event)

	onAllowlist, err := env.repo.Allowlist.IsOnAllowlist(context.Background(), nil, learner.ID, testCourseID)
	require.NoError(t, err)
	assert.True(t, onAllowlist)

	rec = env.do(t, http.MethodDelete, deletePath, staffToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodDelete, deletePath, staffToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignalRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)
	staffToken := env.accessToken(t, env.createUser(t, "staff", true))
	path := "/api/internal/v1/signals"

	rec := env.do(t, http.MethodPost, path, env.accessToken(t, env.createUser(t, "learner", false)), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, path, staffToken, gin.H{"signal": "course-deleted", "payload": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, path, staffToken, gin.H{"signal": signal.GradeNowPassed, "payload": gin.H{"user_id": "u1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.publisher.count(queue.QueueCertificateSignal))

	rec = env.do(t, http.MethodPost, path, staffToken, gin.H{
		"signal":  signal.GradeNowPassed,
		"payload": gin.H{"user_id": "u1", "course_id": testCourseID},
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Equal(t, 1, env.publisher.count(queue.QueueCertificateSignal))
}

func TestVerifyCertificateRoute(t *testing.T) {
	env := newDefaultHTTPEnv(t)

	rec := env.do(t, http.MethodGet, "/api/certificates/v1/verify/0123456789abcdef0123456789abcdef", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	env := newHTTPEnv(t, config.RateLimiterConfig{RequestsPerTimeFrame: 2, TimeFrame: time.Hour, Enabled: true})

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
