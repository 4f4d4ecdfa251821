package route

import (
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Register mounts every route on r.
func Register(r *gin.Engine, c *controller.Controller, m *middleware.Middleware) {
	r.GET("/", c.Index.Index)

	rApi := r.Group("/api")

	V1_Auth(rApi, c.Auth)
	V1_Me(rApi, c.Me, m)
	Courseware(rApi, c.Courseware, m)
	V1_CourseHome(rApi, c.CourseHome, m)
	V1_Certificates(rApi, c.Certificate, m)
	V1_InternalSignals(rApi, c.Signal, m)
}
