package middleware

import (
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestId"
	requestIDLength = 21
)

// RequestIDMiddleware keeps the caller's X-Request-ID or generates one.
func (m Middleware) RequestIDMiddleware(ctx *gin.Context) {
	requestID := ctx.GetHeader(RequestIDHeader)
	if requestID == "" || len(requestID) > 128 {
		id, err := util.GenerateNChar(requestIDLength)
		if err != nil {
			m.app.Logger.Errorf("Failed to generate request id: %v", err)
			ctx.Next()
			return
		}
		requestID = id
	}

	ctx.Set(RequestIDKey, requestID)
	ctx.Header(RequestIDHeader, requestID)
	ctx.Next()
}
