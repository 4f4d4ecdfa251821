package certificate

import (
	"context"
	"testing"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCertificate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "verified")
	env.createCourse(t)

	cert := env.createCertificate(t, user.ID, constant.CertificateStatusDownloadable)
	cert.DownloadURL = "certificates/demo/" + cert.VerifyUUID + ".png"
	env.store.objects[cert.DownloadURL] = []byte("png")
	_, err := env.repo.Certificate.Save(ctx, nil, cert, "artifact", constant.CertificateSourceManual)
	require.NoError(t, err)

	verified, err := env.svc.VerifyCertificate(ctx, cert.VerifyUUID)
	require.NoError(t, err)
	assert.Equal(t, cert.VerifyUUID, verified.VerifyUUID)
	assert.Equal(t, testCourseID, verified.CourseID)
	assert.Equal(t, "Demo Course", verified.CourseName)
	assert.Equal(t, "Test Learner", verified.LearnerName)
	assert.Equal(t, "verified", verified.Mode)
	assert.False(t, verified.IssuedAt.IsZero())
	assert.Equal(t, "https://storage.test/"+cert.DownloadURL, verified.QRCodeURL)
}

func TestVerifyCertificateNotPublic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "failing")
	env.createCourse(t)

	_, err := env.svc.VerifyCertificate(ctx, "doesnotexist")
	assert.ErrorIs(t, err, ErrCertificateNotFound)

	cert := env.createCertificate(t, user.ID, constant.CertificateStatusNotPassing)
	_, err = env.svc.VerifyCertificate(ctx, cert.VerifyUUID)
	assert.ErrorIs(t, err, ErrCertificateNotFound)
}
