package courseware

import (
	"context"
	"fmt"
)

type CelebrationUpdate struct {
	FirstSection *bool `json:"first_section"`
	WeeklyGoal   *bool `json:"weekly_goal"`
}

func (u CelebrationUpdate) isEmpty() bool {
	return u.FirstSection == nil && u.WeeklyGoal == nil
}

// UpdateCelebration stores the given flags on the learner's enrollment and
// reports whether the celebration row was created.
func (s *Service) UpdateCelebration(ctx context.Context, userID, courseKey string, update CelebrationUpdate) (bool, error) {
	if update.isEmpty() {
		return false, ErrNoValidCelebrationFields
	}

	course, err := s.Course(ctx, courseKey)
	if err != nil {
		return false, err
	}

	enrollment, err := s.repo.Enrollment.GetForStudent(ctx, nil, userID, course.ID)
	if err != nil {
		return false, err
	}
	if enrollment == nil {
		return false, fmt.Errorf("%w: %s", ErrNotEnrolled, course.ID)
	}

	_, created, err := s.repo.Celebration.Upsert(ctx, nil, enrollment.ID, update.FirstSection, update.WeeklyGoal)
	if err != nil {
		return false, err
	}

	return created, nil
}
