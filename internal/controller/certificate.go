package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/signal"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	*baseController
}

// GetCertificateStatus is open to the learner and to staff.
func (cc CertificateController) GetCertificateStatus(ctx *gin.Context) {
	viewer, ok := cc.getViewer(ctx)
	if !ok {
		return
	}

	userId := ctx.Param("userId")
	if viewer.ID != userId && !viewer.IsStaff {
		util.ResponseFailed(ctx, http.StatusForbidden, ErrForbidden, util.GenerateErrorMessages(errors.New(ErrForbidden), "forbidden"), nil)
		return
	}

	course, err := cc.app.Courseware.Course(ctx, courseKeyParam(ctx))
	if cc.respondCourseError(ctx, err) {
		return
	}

	data, err := cc.app.Certificates.CertificateDataFor(ctx, userId, course)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	if data == nil {
		util.ResponseFailed(ctx, http.StatusNotFound, "Certificate not found", util.GenerateErrorMessages(certificate.ErrCertificateNotFound, "certificate"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"userId":      userId,
		"courseId":    course.ID,
		"certificate": data,
	})
}

func (cc CertificateController) RequestGeneration(ctx *gin.Context) {
	viewer, ok := cc.getViewer(ctx)
	if !ok {
		return
	}

	course, err := cc.app.Courseware.Course(ctx, courseKeyParam(ctx))
	if cc.respondCourseError(ctx, err) {
		return
	}

	enqueued, err := cc.app.Certificates.RequestSelfGeneratedCertificate(ctx, viewer.ID, course.ID)
	if err != nil {
		if errors.Is(err, certificate.ErrSelfGenerationDisabled) {
			util.ResponseFailed(ctx, http.StatusForbidden, "Self generated certificates are disabled", util.GenerateErrorMessages(err, "courseKey"), nil)
			return
		}

		cc.app.Logger.Errorf("Failed to request certificate for %s : %s: %v", viewer.ID, course.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to request certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.JSON(http.StatusAccepted, util.BuildResponseSuccess(gin.H{
		"courseId": course.ID,
		"enqueued": enqueued,
	}))
}

type allowlistRequest struct {
	UserID    string `json:"userId" binding:"required,strNotEmpty"`
	CourseKey string `json:"courseKey" binding:"required,courseKey"`
	Notes     string `json:"notes" binding:"cmax=1024"`
	// Defaults to true.
	Allowlist *bool `json:"allowlist"`
}

// AddToAllowlist saves the allowlist row and emits the allowlist saved signal.
func (cc CertificateController) AddToAllowlist(ctx *gin.Context) {
	var body allowlistRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	course, err := cc.app.Courseware.Course(ctx, body.CourseKey)
	if cc.respondCourseError(ctx, err) {
		return
	}

	if _, err := cc.app.Repository.User.GetById(ctx, nil, body.UserID); err != nil {
		util.ResponseFailed(ctx, http.StatusNotFound, "User not found", util.GenerateErrorMessages(err, "userId"), nil)
		return
	}

	allowlist := true
	if body.Allowlist != nil {
		allowlist = *body.Allowlist
	}

	entry, err := cc.app.Repository.Allowlist.Upsert(ctx, nil, body.UserID, course.ID, allowlist, body.Notes)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save allowlist entry", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := queue.PublishSignal(cc.app.Publisher, signal.AllowlistRowSavedEvent{UserID: body.UserID, CourseID: course.ID}); err != nil {
		cc.app.Logger.Errorf("Failed to publish %s for %s : %s: %v", signal.AllowlistRowSaved, body.UserID, course.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Allowlist entry saved but the signal could not be published", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"allowlist": entry,
	})
}

func (cc CertificateController) RemoveFromAllowlist(ctx *gin.Context) {
	userId := ctx.Param("userId")

	course, err := cc.app.Courseware.Course(ctx, courseKeyParam(ctx))
	if cc.respondCourseError(ctx, err) {
		return
	}

	deleted, err := cc.app.Repository.Allowlist.Delete(ctx, nil, userId, course.ID)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to remove allowlist entry", util.GenerateErrorMessages(err), nil)
		return
	}

	if !deleted {
		util.ResponseFailed(ctx, http.StatusNotFound, "Allowlist entry not found", util.GenerateErrorMessages(errors.New("allowlist entry not found"), "allowlist"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"userId":   userId,
		"courseId": course.ID,
	})
}

// VerifyCertificate is public. It backs the url encoded in the certificate QR code.
func (cc CertificateController) VerifyCertificate(ctx *gin.Context) {
	verified, err := cc.app.Certificates.VerifyCertificate(ctx, ctx.Param("verifyUuid"))
	if err != nil {
		if errors.Is(err, certificate.ErrCertificateNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Certificate not found", util.GenerateErrorMessages(err, "verifyUuid"), nil)
			return
		}

		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to verify certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, verified)
}
