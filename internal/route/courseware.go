package route

import (
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Courseware routes take the course key as a catch all so legacy org/course/run keys match.
func Courseware(r *gin.RouterGroup, cc *controller.CoursewareController, middleware *middleware.Middleware) {
	courseware := r.Group("/courseware")
	courseware.Use(middleware.AuthMiddleware)
	{
		courseware.GET("/course/*courseKey", cc.CoursewareInformation)
		courseware.GET("/sequence/:sequenceKey", cc.SequenceMetadata)
		courseware.GET("/resume/*courseKey", cc.Resume)
		courseware.POST("/celebration/*courseKey", cc.Celebration)
	}
}

func V1_CourseHome(r *gin.RouterGroup, chc *controller.CourseHomeController, middleware *middleware.Middleware) {
	v1 := r.Group("/course_home/v1")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("/course_metadata/*courseKey", chc.CourseMetadata)
	}
}
