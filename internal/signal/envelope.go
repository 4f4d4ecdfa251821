package signal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrUnknownSignal = errors.New("unknown signal")

var validate = validator.New()

// Envelope is the wire format of an event on the signal queue.
type Envelope struct {
	Signal  string          `json:"signal"`
	Payload json.RawMessage `json:"payload"`
	SentAt  string          `json:"sent_at"`
	Try     int             `json:"try" default:"0"`
}

func NewEnvelope(event Event) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", event.SignalName(), err)
	}

	return Envelope{
		Signal:  event.SignalName(),
		Payload: payload,
		SentAt:  time.Now().Format(time.RFC3339),
		Try:     0,
	}, nil
}

func newEvent(signalName string) (Event, error) {
	switch signalName {
	case CoursePacingChanged:
		return &CoursePacingChangedEvent{}, nil
	case AllowlistRowSaved:
		return &AllowlistRowSavedEvent{}, nil
	case GradeNowPassed:
		return &GradeNowPassedEvent{}, nil
	case GradeNowFailed:
		return &GradeNowFailedEvent{}, nil
	case LearnerNowVerified:
		return &LearnerNowVerifiedEvent{}, nil
	case EnrollmentTrackUpdated:
		return &EnrollmentTrackUpdatedEvent{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, signalName)
}

// Decode returns the typed event carried by the envelope.
func (e Envelope) Decode() (Event, error) {
	event, err := newEvent(e.Signal)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(e.Payload, event); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", e.Signal, err)
	}

	if err := validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", e.Signal, err)
	}

	// Receivers switch on value types.
	switch ev := event.(type) {
	case *CoursePacingChangedEvent:
		return *ev, nil
	case *AllowlistRowSavedEvent:
		return *ev, nil
	case *GradeNowPassedEvent:
		return *ev, nil
	case *GradeNowFailedEvent:
		return *ev, nil
	case *LearnerNowVerifiedEvent:
		return *ev, nil
	case *EnrollmentTrackUpdatedEvent:
		return *ev, nil
	}

	return event, nil
}
