package util

import (
	"slices"

	"github.com/SeakMengs/CourseCert/internal/constant"
)

var courseStaffRoles = []constant.CourseAccessRole{
	constant.CourseRoleStaff,
	constant.CourseRoleInstructor,
}

func HasRole(roles []constant.CourseAccessRole, requiredRoles []constant.CourseAccessRole) bool {
	for _, role := range requiredRoles {
		if slices.Contains(roles, role) {
			return true
		}
	}
	return false
}

// Course staff are either global staff or hold a staff or instructor role on the course.
func IsCourseStaff(isGlobalStaff bool, roles []constant.CourseAccessRole) bool {
	return isGlobalStaff || HasRole(roles, courseStaffRoles)
}
