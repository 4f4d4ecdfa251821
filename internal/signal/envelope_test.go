package signal

import (
	"encoding/json"
	"testing"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeDecode(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{name: "pacing", event: CoursePacingChangedEvent{CourseID: "course-v1:edX+DemoX+1", SelfPaced: true}},
		{name: "allowlist", event: AllowlistRowSavedEvent{UserID: "u1", CourseID: "course-v1:edX+DemoX+1"}},
		{name: "passed", event: GradeNowPassedEvent{UserID: "u1", CourseID: "course-v1:edX+DemoX+1"}},
		{name: "failed", event: GradeNowFailedEvent{UserID: "u1", CourseID: "course-v1:edX+DemoX+1", Percent: 0.4}},
		{name: "verified", event: LearnerNowVerifiedEvent{UserID: "u1"}},
		{name: "track", event: EnrollmentTrackUpdatedEvent{UserID: "u1", CourseID: "course-v1:edX+DemoX+1", Mode: constant.EnrollmentModeVerified}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := NewEnvelope(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.event.SignalName(), envelope.Signal)
			assert.NotEmpty(t, envelope.SentAt)

			raw, err := json.Marshal(envelope)
			require.NoError(t, err)

			var received Envelope
			require.NoError(t, json.Unmarshal(raw, &received))

			event, err := received.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.event, event)
		})
	}
}

func TestEnvelopeDecodeRejectsUnknownSignal(t *testing.T) {
	_, err := Envelope{Signal: "course-deleted", Payload: json.RawMessage(`{}`)}.Decode()
	assert.ErrorIs(t, err, ErrUnknownSignal)
}

func TestEnvelopeDecodeRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed", payload: `{"user_id":`},
		{name: "missing user", payload: `{"course_id":"course-v1:edX+DemoX+1"}`},
		{name: "grade out of range", payload: `{"user_id":"u1","course_id":"course-v1:edX+DemoX+1","percent":1.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Envelope{Signal: GradeNowFailed, Payload: json.RawMessage(tt.payload)}.Decode()
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnknownSignal)
		})
	}
}
