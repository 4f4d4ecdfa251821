package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrNoAuthorizationHeader  = errors.New("no authorization header specified")
	ErrMalformedAuthorization = errors.New("wrong authorization header format")
	ErrEmptyToken             = errors.New("token is empty")
)

// ReadAuthorizationHeader splits "Authorization: <type> <token>" and returns
// the upper cased type and the token.
func ReadAuthorizationHeader(ctx *gin.Context) (string, string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", "", ErrNoAuthorizationHeader
	}

	tokenType, token, ok := strings.Cut(header, " ")
	if !ok {
		return "", "", ErrMalformedAuthorization
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", "", ErrEmptyToken
	}

	return strings.ToUpper(tokenType), token, nil
}

// ReadBearerToken returns the access token of a "Bearer" authorization header.
func ReadBearerToken(ctx *gin.Context) (string, error) {
	return readTokenOfType(ctx, "Bearer")
}

// ReadRefreshToken returns the refresh token of a "Refresh" authorization header.
func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return readTokenOfType(ctx, "Refresh")
}

func readTokenOfType(ctx *gin.Context, want string) (string, error) {
	tokenType, token, err := ReadAuthorizationHeader(ctx)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(tokenType, want) {
		return "", errors.New("invalid token type; expected '" + want + "'")
	}

	return token, nil
}
