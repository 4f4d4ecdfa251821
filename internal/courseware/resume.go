package courseware

import "context"

type ResumeBlock struct {
	BlockID   string `json:"block_id"`
	SectionID string `json:"section_id"`
	UnitID    string `json:"unit_id"`
}

// Resume returns empty ids when the learner has not visited the course yet.
func (s *Service) Resume(ctx context.Context, userID, courseKey string) (*ResumeBlock, error) {
	course, err := s.Course(ctx, courseKey)
	if err != nil {
		return nil, err
	}

	position, err := s.repo.ResumePosition.GetForStudent(ctx, nil, userID, course.ID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return &ResumeBlock{}, nil
	}

	return &ResumeBlock{
		BlockID:   position.BlockID,
		SectionID: position.SectionID,
		UnitID:    position.UnitID,
	}, nil
}
