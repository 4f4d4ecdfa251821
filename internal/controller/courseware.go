package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

type CoursewareController struct {
	*baseController
}

func (cc CoursewareController) CoursewareInformation(ctx *gin.Context) {
	viewer, ok := cc.getViewer(ctx)
	if !ok {
		return
	}

	info, err := cc.app.Courseware.CoursewareInformation(ctx, viewer, courseKeyParam(ctx))
	if cc.respondCourseError(ctx, err) {
		return
	}

	util.ResponseSuccess(ctx, info)
}

func (cc CoursewareController) SequenceMetadata(ctx *gin.Context) {
	sequence, err := cc.app.Courseware.SequenceMetadata(ctx, ctx.Param("sequenceKey"))
	if err != nil {
		switch {
		case errors.Is(err, courseware.ErrInvalidSequenceKey):
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid usage key", util.GenerateErrorMessages(err, "sequenceKey"), nil)
		case errors.Is(err, courseware.ErrLearningSequenceNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Sequence not found", util.GenerateErrorMessages(err, "sequenceKey"), nil)
		default:
			cc.app.Logger.Errorf("Failed to load sequence %s: %v", ctx.Param("sequenceKey"), err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		}
		return
	}

	util.ResponseSuccess(ctx, sequence)
}

func (cc CoursewareController) Resume(ctx *gin.Context) {
	viewer, ok := cc.getViewer(ctx)
	if !ok {
		return
	}

	block, err := cc.app.Courseware.Resume(ctx, viewer.ID, courseKeyParam(ctx))
	if cc.respondCourseError(ctx, err) {
		return
	}

	util.ResponseSuccess(ctx, block)
}

// Celebration answers 201 when the celebration row is created and 200 when it is updated.
func (cc CoursewareController) Celebration(ctx *gin.Context) {
	viewer, ok := cc.getViewer(ctx)
	if !ok {
		return
	}

	var body courseware.CelebrationUpdate
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	created, err := cc.app.Courseware.UpdateCelebration(ctx, viewer.ID, courseKeyParam(ctx), body)
	if err != nil {
		switch {
		case errors.Is(err, courseware.ErrNoValidCelebrationFields):
			util.ResponseFailed(ctx, http.StatusBadRequest, "No valid celebration fields", util.GenerateErrorMessages(err, "celebration"), nil)
		case errors.Is(err, courseware.ErrNotEnrolled):
			util.ResponseFailed(ctx, http.StatusNotFound, "Enrollment not found", util.GenerateErrorMessages(err, "enrollment"), nil)
		default:
			cc.respondCourseError(ctx, err)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, util.BuildResponseSuccess(body))
}

type CourseHomeController struct {
	*baseController
}

func (chc CourseHomeController) CourseMetadata(ctx *gin.Context) {
	viewer, ok := chc.getViewer(ctx)
	if !ok {
		return
	}

	metadata, err := chc.app.Courseware.CourseHomeMetadata(ctx, viewer, courseKeyParam(ctx))
	if chc.respondCourseError(ctx, err) {
		return
	}

	util.ResponseSuccess(ctx, metadata)
}
