package middleware

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/CourseCert/internal/auth"
	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

const AuthUserKey = "user"

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid token", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		m.app.Logger.Debugf("Invalid token type: %s", claim.Type)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid access token type", util.GenerateErrorMessages(errors.New("invalid jwt token type"), "unauthorized"), nil)
		return
	}

	ctx.Set(AuthUserKey, claim.User)
	ctx.Next()
}

// StaffMiddleware must run after AuthMiddleware.
func (m Middleware) StaffMiddleware(ctx *gin.Context) {
	user, ok := ctx.Get(AuthUserKey)
	payload, isPayload := user.(auth.JWTPayload)
	if !ok || !isPayload {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("user not found in context"), "unauthorized"), nil)
		return
	}

	if !payload.IsStaff {
		util.ResponseFailed(ctx, http.StatusForbidden, "You do not have permission to access this resource", util.GenerateErrorMessages(errors.New("staff only"), "forbidden"), nil)
		return
	}

	ctx.Next()
}
