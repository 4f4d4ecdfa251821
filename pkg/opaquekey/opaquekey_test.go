package opaquekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CourseKey
		wantErr bool
	}{
		{"Course v1", "course-v1:edX+DemoX+Demo_Course", CourseKey{Org: "edX", Course: "DemoX", Run: "Demo_Course"}, false},
		{"Legacy", "edX/DemoX/2014", CourseKey{Org: "edX", Course: "DemoX", Run: "2014", Deprecated: true}, false},
		{"Run with dots", "course-v1:MITx+6.002x+2T2024", CourseKey{Org: "MITx", Course: "6.002x", Run: "2T2024"}, false},
		{"Missing run", "course-v1:edX+DemoX", CourseKey{}, true},
		{"Too many parts", "course-v1:edX+DemoX+Run+Extra", CourseKey{}, true},
		{"Empty", "", CourseKey{}, true},
		{"Bad chars", "course-v1:edX+Demo X+Run", CourseKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCourseKey(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseUsageKey(t *testing.T) {
	key := "block-v1:edX+DemoX+Demo_Course+type@sequential+block@basic_questions"

	got, err := ParseUsageKey(key)
	require.NoError(t, err)

	assert.Equal(t, "sequential", got.BlockType)
	assert.Equal(t, "basic_questions", got.BlockID)
	assert.Equal(t, "course-v1:edX+DemoX+Demo_Course", got.CourseKey.String())
	assert.Equal(t, key, got.String())

	for _, bad := range []string{
		"",
		"ZmM4ZjQ4NDk1YzA0",
		"block-v1:edX+DemoX+Demo_Course+sequential+basic_questions",
		"block-v1:edX+DemoX+type@sequential+block@x",
	} {
		_, err := ParseUsageKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}
