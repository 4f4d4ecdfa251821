package controller

import (
	"net/http"

	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/signal"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

type SignalController struct {
	*baseController
}

// PublishSignal validates a signal sent by another service and queues it for the receivers.
func (sc SignalController) PublishSignal(ctx *gin.Context) {
	var envelope signal.Envelope
	if err := ctx.ShouldBindJSON(&envelope); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	event, err := envelope.Decode()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid signal", util.GenerateErrorMessages(err, "signal"), nil)
		return
	}

	if err := queue.PublishSignal(sc.app.Publisher, event); err != nil {
		sc.app.Logger.Errorf("Failed to publish signal %s: %v", event.SignalName(), err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to publish signal", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.JSON(http.StatusAccepted, util.BuildResponseSuccess(gin.H{
		"signal": event.SignalName(),
	}))
}
