package route

import (
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Me(r *gin.RouterGroup, meController *controller.MeController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/me")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", meController.GetMe)
	}
}
