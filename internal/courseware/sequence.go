package courseware

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/pkg/hashutil"
	"github.com/SeakMengs/CourseCert/pkg/opaquekey"
	"gorm.io/gorm"
)

var ErrLearningSequenceNotFound = errors.New("learning sequence not found")

type sequenceNotFoundError struct {
	lookup string
	value  string
}

func (e *sequenceNotFoundError) Error() string {
	return fmt.Sprintf("could not load LearningSequenceData for %s %s", e.lookup, e.value)
}

func (e *sequenceNotFoundError) Is(target error) bool {
	return target == ErrLearningSequenceNotFound
}

type LearningSequenceData struct {
	UsageKey     string `json:"usage_key"`
	UsageKeyHash string `json:"usage_key_hash"`
	Title        string `json:"title"`
}

func newLearningSequenceData(sequence *model.LearningSequence) *LearningSequenceData {
	return &LearningSequenceData{
		UsageKey:     sequence.UsageKey,
		UsageKeyHash: sequence.UsageKeyHash,
		Title:        sequence.Title,
	}
}

func (s *Service) GetLearningSequence(ctx context.Context, usageKey string) (*LearningSequenceData, error) {
	sequence, err := s.repo.LearningSequence.GetByUsageKey(ctx, nil, usageKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &sequenceNotFoundError{lookup: "usage key", value: usageKey}
		}
		return nil, err
	}

	return newLearningSequenceData(sequence), nil
}

func (s *Service) GetLearningSequenceByHash(ctx context.Context, usageKeyHash string) (*LearningSequenceData, error) {
	sequence, err := s.repo.LearningSequence.GetByUsageKeyHash(ctx, nil, usageKeyHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &sequenceNotFoundError{lookup: "usage key hash", value: usageKeyHash}
		}
		return nil, err
	}

	return newLearningSequenceData(sequence), nil
}

// SequenceMetadata accepts either a full usage key or the short hash of one.
func (s *Service) SequenceMetadata(ctx context.Context, keyOrHash string) (*LearningSequenceData, error) {
	if _, err := opaquekey.ParseUsageKey(keyOrHash); err == nil {
		return s.GetLearningSequence(ctx, keyOrHash)
	}

	if keyOrHash == "" || !hashutil.IsPotentialUsageKeyHash(keyOrHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSequenceKey, keyOrHash)
	}

	return s.GetLearningSequenceByHash(ctx, keyOrHash)
}
