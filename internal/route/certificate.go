package route

import (
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Certificates(r *gin.RouterGroup, cc *controller.CertificateController, middleware *middleware.Middleware) {
	v1 := r.Group("/certificates/v1")
	v1.GET("/verify/:verifyUuid", cc.VerifyCertificate)

	learner := v1.Group("")
	learner.Use(middleware.AuthMiddleware)
	{
		learner.GET("/users/:userId/courses/*courseKey", cc.GetCertificateStatus)
		learner.POST("/generate/*courseKey", cc.RequestGeneration)
	}

	staff := v1.Group("/allowlist")
	staff.Use(middleware.AuthMiddleware, middleware.StaffMiddleware)
	{
		staff.POST("", cc.AddToAllowlist)
		staff.DELETE("/:userId/courses/*courseKey", cc.RemoveFromAllowlist)
	}
}
