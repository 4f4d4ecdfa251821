package controller

import (
	"errors"
	"net/http"
	"strings"

	appcontext "github.com/SeakMengs/CourseCert/internal/app_context"
	"github.com/SeakMengs/CourseCert/internal/auth"
	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

const (
	ErrUserNotInContext = "user not found in context"
	ErrCourseKeyInvalid = "course key is invalid"
	ErrCourseNotFound   = "course not found"
	ErrForbidden        = "you do not have permission to access this resource"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Auth        *AuthController
	Me          *MeController
	Courseware  *CoursewareController
	CourseHome  *CourseHomeController
	Certificate *CertificateController
	Signal      *SignalController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Auth:        &AuthController{baseController: bc},
		Me:          &MeController{baseController: bc},
		Courseware:  &CoursewareController{baseController: bc},
		CourseHome:  &CourseHomeController{baseController: bc},
		Certificate: &CertificateController{baseController: bc},
		Signal:      &SignalController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get(middleware.AuthUserKey)
	if !exists {
		return nil, errors.New(ErrUserNotInContext)
	}

	payload, ok := user.(auth.JWTPayload)
	if !ok {
		return nil, errors.New(ErrUserNotInContext)
	}

	return &payload, nil
}

// getViewer responds with 401 and returns false when no user is authenticated.
func (b *baseController) getViewer(ctx *gin.Context) (courseware.Viewer, bool) {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return courseware.Viewer{}, false
	}

	return courseware.Viewer{ID: user.ID, Username: user.Username, IsStaff: user.IsStaff}, true
}

// Course keys may contain slashes, so routes capture them with a catch all parameter.
func courseKeyParam(ctx *gin.Context) string {
	return strings.TrimPrefix(ctx.Param("courseKey"), "/")
}

// respondCourseError maps course lookup errors to a response. Return false when err is nil.
func (b *baseController) respondCourseError(ctx *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, courseware.ErrInvalidCourseKey):
		util.ResponseFailed(ctx, http.StatusBadRequest, ErrCourseKeyInvalid, util.GenerateErrorMessages(err, "courseKey"), nil)
	case errors.Is(err, courseware.ErrCourseNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, ErrCourseNotFound, util.GenerateErrorMessages(err, "courseKey"), nil)
	default:
		b.app.Logger.Errorf("Course request failed: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
	}

	return true
}
