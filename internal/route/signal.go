package route

import (
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_InternalSignals(r *gin.RouterGroup, sc *controller.SignalController, middleware *middleware.Middleware) {
	v1 := r.Group("/internal/v1")
	v1.Use(middleware.AuthMiddleware, middleware.StaffMiddleware)
	{
		v1.POST("/signals", sc.PublishSignal)
	}
}
