package auth

import (
	"testing"
	"time"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestJWT(t *testing.T, secret string) *JWT {
	return NewJwt(config.AuthConfig{JWT_SECRET: secret}, zaptest.NewLogger(t).Sugar())
}

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := newTestJWT(t, "test-secret")
	payload := JWTPayload{ID: "id1234", Email: "test@gmail.com", Username: "tester", IsStaff: true}

	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(payload)
	require.NoError(t, err)

	refreshClaims, err := jwtService.VerifyJwtToken(*refreshToken)
	require.NoError(t, err)
	assert.Equal(t, constant.JWT_TYPE_REFRESH, refreshClaims.Type)
	assert.Equal(t, payload, refreshClaims.User)

	accessClaims, err := jwtService.VerifyJwtToken(*accessToken)
	require.NoError(t, err)
	assert.Equal(t, constant.JWT_TYPE_ACCESS, accessClaims.Type)
	assert.Equal(t, payload, accessClaims.User)
	assert.Equal(t, "id1234", accessClaims.Subject)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	_, accessToken, err := newTestJWT(t, "secret-a").GenerateRefreshAndAccessToken(JWTPayload{ID: "u1"})
	require.NoError(t, err)

	_, err = newTestJWT(t, "secret-b").VerifyJwtToken(*accessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	jwtService := newTestJWT(t, "test-secret")
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jwtService.now = func() time.Time { return issuedAt }

	_, accessToken, err := jwtService.GenerateRefreshAndAccessToken(JWTPayload{ID: "u1"})
	require.NoError(t, err)

	jwtService.now = func() time.Time { return issuedAt.Add(AccessTokenTTL + time.Minute) }
	_, err = jwtService.VerifyJwtToken(*accessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTRejectsMissingUser(t *testing.T) {
	jwtService := newTestJWT(t, "test-secret")
	token, err := jwtService.sign(JWTPayload{}, constant.JWT_TYPE_ACCESS, time.Hour)
	require.NoError(t, err)

	_, err = jwtService.VerifyJwtToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTRejectsUnknownType(t *testing.T) {
	jwtService := newTestJWT(t, "test-secret")
	token, err := jwtService.sign(JWTPayload{ID: "u1"}, "session", time.Hour)
	require.NoError(t, err)

	_, err = jwtService.VerifyJwtToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTRejectsOtherSigningMethod(t *testing.T) {
	jwtService := newTestJWT(t, "test-secret")
	claims := JWTClaims{
		User: JWTPayload{ID: "u1"},
		Type: constant.JWT_TYPE_ACCESS,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = jwtService.VerifyJwtToken(token)
	assert.Error(t, err)
}
