package courseware

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/util"
)

const (
	AccessErrorCourseNotStarted = "course_not_started"
	AccessErrorNotEnrolled      = "enrollment_required"
)

var upsellToVerifiedModes = []constant.EnrollmentMode{
	constant.EnrollmentModeAudit,
	constant.EnrollmentModeHonor,
}

type CourseTab struct {
	TabID string `json:"tab_id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type CourseAccess struct {
	HasAccess        bool   `json:"has_access"`
	ErrorCode        string `json:"error_code,omitempty"`
	DeveloperMessage string `json:"developer_message,omitempty"`
	UserMessage      string `json:"user_message,omitempty"`
}

type Celebrations struct {
	FirstSection bool `json:"first_section"`
	WeeklyGoal   bool `json:"weekly_goal"`
}

type VerifiedMode struct {
	Price          int    `json:"price"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currency_symbol"`
	Sku            string `json:"sku"`
	UpgradeURL     string `json:"upgrade_url"`
}

type CourseHomeMetadata struct {
	CanLoadCourseware   bool          `json:"can_load_courseware"`
	Celebrations        Celebrations  `json:"celebrations"`
	CourseAccess        CourseAccess  `json:"course_access"`
	CourseID            string        `json:"course_id"`
	IsEnrolled          bool          `json:"is_enrolled"`
	IsSelfPaced         bool          `json:"is_self_paced"`
	IsStaff             bool          `json:"is_staff"`
	Number              string        `json:"number"`
	Org                 string        `json:"org"`
	OriginalUserIsStaff bool          `json:"original_user_is_staff"`
	Start               *time.Time    `json:"start"`
	Tabs                []CourseTab   `json:"tabs"`
	Title               string        `json:"title"`
	Username            string        `json:"username"`
	VerifiedMode        *VerifiedMode `json:"verified_mode"`
}

func (s *Service) CourseHomeMetadata(ctx context.Context, viewer Viewer, courseKey string) (*CourseHomeMetadata, error) {
	course, err := s.Course(ctx, courseKey)
	if err != nil {
		return nil, err
	}

	roles, err := s.repo.AccessRole.ListRoles(ctx, nil, viewer.ID, course.ID)
	if err != nil {
		return nil, err
	}
	isStaff := util.IsCourseStaff(viewer.IsStaff, roles)

	enrollment, err := s.repo.Enrollment.GetForStudent(ctx, nil, viewer.ID, course.ID)
	if err != nil {
		return nil, err
	}
	isEnrolled := enrollment != nil && enrollment.IsActive

	metadata := &CourseHomeMetadata{
		CourseID:            course.ID,
		IsEnrolled:          isEnrolled,
		IsSelfPaced:         course.SelfPaced,
		IsStaff:             isStaff,
		Number:              course.Number,
		Org:                 course.Org,
		OriginalUserIsStaff: viewer.IsStaff,
		Start:               course.Start,
		Tabs:                s.courseTabs(course, isStaff),
		Title:               course.DisplayName,
		Username:            viewer.Username,
	}

	metadata.CourseAccess = s.courseAccess(course, isEnrolled, isStaff)
	metadata.CanLoadCourseware = metadata.CourseAccess.HasAccess

	if enrollment != nil {
		celebration, err := s.repo.Celebration.GetByEnrollment(ctx, nil, enrollment.ID)
		if err != nil {
			return nil, err
		}
		if celebration != nil {
			metadata.Celebrations = Celebrations{
				FirstSection: celebration.CelebrateFirstSection,
				WeeklyGoal:   celebration.CelebrateWeeklyGoal,
			}
		}
	}

	if isEnrolled && slices.Contains(upsellToVerifiedModes, enrollment.Mode) {
		metadata.VerifiedMode, err = s.verifiedMode(ctx, course.ID)
		if err != nil {
			return nil, err
		}
	}

	return metadata, nil
}

// Staff always get in. Learners need an active enrollment in a course that has started.
func (s *Service) courseAccess(course *model.CourseOverview, isEnrolled, isStaff bool) CourseAccess {
	if isStaff {
		return CourseAccess{HasAccess: true}
	}

	if !course.HasStarted(s.now()) {
		return CourseAccess{
			HasAccess:        false,
			ErrorCode:        AccessErrorCourseNotStarted,
			DeveloperMessage: "Course has not started",
			UserMessage:      "This course has not started yet.",
		}
	}

	if !isEnrolled {
		return CourseAccess{
			HasAccess:        false,
			ErrorCode:        AccessErrorNotEnrolled,
			DeveloperMessage: "User is not enrolled in the course",
			UserMessage:      "You must be enrolled in the course to see course content.",
		}
	}

	return CourseAccess{HasAccess: true}
}

func (s *Service) courseTabs(course *model.CourseOverview, isStaff bool) []CourseTab {
	base := strings.TrimRight(s.cfg.FrontURL, "/") + "/course/" + url.PathEscape(course.ID)

	tabs := []CourseTab{
		{TabID: "courseware", Title: "Course", URL: base + "/home"},
		{TabID: "progress", Title: "Progress", URL: base + "/progress"},
		{TabID: "dates", Title: "Dates", URL: base + "/dates"},
	}
	if isStaff {
		tabs = append(tabs, CourseTab{TabID: "instructor", Title: "Instructor", URL: base + "/instructor"})
	}

	return tabs
}

func (s *Service) verifiedMode(ctx context.Context, courseID string) (*VerifiedMode, error) {
	mode, err := s.repo.CourseMode.GetByCourseAndMode(ctx, nil, courseID, constant.EnrollmentModeVerified)
	if err != nil || mode == nil {
		return nil, err
	}

	return &VerifiedMode{
		Price:          mode.MinPrice,
		Currency:       strings.ToUpper(mode.Currency),
		CurrencySymbol: currencySymbol(mode.Currency),
		Sku:            mode.Sku,
		UpgradeURL:     strings.TrimRight(s.cfg.FrontURL, "/") + "/checkout?sku=" + url.QueryEscape(mode.Sku),
	}, nil
}

func currencySymbol(currency string) string {
	switch strings.ToLower(currency) {
	case "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	}
	return strings.ToUpper(currency)
}
