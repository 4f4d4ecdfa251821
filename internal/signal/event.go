// Package signal carries learner and course domain events to the receivers
// that react to them, in process or over the signal queue.
package signal

import "github.com/SeakMengs/CourseCert/internal/constant"

const (
	CoursePacingChanged    = "course-pacing-changed"
	AllowlistRowSaved      = "allowlist-row-saved"
	GradeNowPassed         = "grade-now-passed"
	GradeNowFailed         = "grade-now-failed"
	LearnerNowVerified     = "learner-now-verified"
	EnrollmentTrackUpdated = "enrollment-track-updated"
)

type Event interface {
	SignalName() string
}

type CoursePacingChangedEvent struct {
	CourseID  string `json:"course_id" validate:"required"`
	SelfPaced bool   `json:"self_paced"`
}

func (CoursePacingChangedEvent) SignalName() string { return CoursePacingChanged }

type AllowlistRowSavedEvent struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
}

func (AllowlistRowSavedEvent) SignalName() string { return AllowlistRowSaved }

type GradeNowPassedEvent struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
}

func (GradeNowPassedEvent) SignalName() string { return GradeNowPassed }

type GradeNowFailedEvent struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
	// Percent is the learner's current grade between 0 and 1.
	Percent float64 `json:"percent" validate:"gte=0,lte=1"`
}

func (GradeNowFailedEvent) SignalName() string { return GradeNowFailed }

type LearnerNowVerifiedEvent struct {
	UserID string `json:"user_id" validate:"required"`
}

func (LearnerNowVerifiedEvent) SignalName() string { return LearnerNowVerified }

type EnrollmentTrackUpdatedEvent struct {
	UserID   string                  `json:"user_id" validate:"required"`
	CourseID string                  `json:"course_id" validate:"required"`
	Mode     constant.EnrollmentMode `json:"mode" validate:"required"`
}

func (EnrollmentTrackUpdatedEvent) SignalName() string { return EnrollmentTrackUpdated }
