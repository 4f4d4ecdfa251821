package controller

import (
	"net/http"

	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

type MeController struct {
	*baseController
}

func (mc MeController) GetMe(ctx *gin.Context) {
	viewer, ok := mc.getViewer(ctx)
	if !ok {
		return
	}

	user, err := mc.app.Repository.User.GetById(ctx, nil, viewer.ID)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusNotFound, "User not found", util.GenerateErrorMessages(err, "user"), nil)
		return
	}

	enrollments, err := mc.app.Repository.Enrollment.ListActiveByUser(ctx, nil, viewer.ID)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list enrollments", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user":        user,
		"enrollments": enrollments,
	})
}
