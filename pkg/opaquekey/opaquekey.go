// Package opaquekey parses the course and usage keys that identify course runs and their blocks.
package opaquekey

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	courseKeyPrefix = "course-v1:"
	usageKeyPrefix  = "block-v1:"
	typeTag         = "type@"
	blockTag        = "block@"
)

var ErrInvalidKey = errors.New("invalid opaque key")

// CourseKeyPattern matches both course-v1 keys and legacy slash separated keys.
const CourseKeyPattern = `[^/+]+(/|\+)[^/+]+(/|\+)[^/?]+`

var (
	allowedID       = regexp.MustCompile(`^[\w\-~.:]+$`)
	courseKeyRegexp = regexp.MustCompile(`^` + CourseKeyPattern + `$`)
)

type CourseKey struct {
	Org    string
	Course string
	Run    string
	// Deprecated keys use the org/course/run form.
	Deprecated bool
}

func (k CourseKey) String() string {
	if k.Deprecated {
		return k.Org + "/" + k.Course + "/" + k.Run
	}
	return courseKeyPrefix + k.Org + "+" + k.Course + "+" + k.Run
}

func ParseCourseKey(s string) (CourseKey, error) {
	s = strings.TrimSpace(s)
	if !courseKeyRegexp.MatchString(s) && !strings.HasPrefix(s, courseKeyPrefix) {
		return CourseKey{}, fmt.Errorf("%w: course key %q", ErrInvalidKey, s)
	}

	var parts []string
	deprecated := false
	if rest, ok := strings.CutPrefix(s, courseKeyPrefix); ok {
		parts = strings.Split(rest, "+")
	} else {
		parts = strings.Split(s, "/")
		deprecated = true
	}

	if len(parts) != 3 {
		return CourseKey{}, fmt.Errorf("%w: course key %q", ErrInvalidKey, s)
	}
	for _, p := range parts {
		if !allowedID.MatchString(p) {
			return CourseKey{}, fmt.Errorf("%w: course key %q", ErrInvalidKey, s)
		}
	}

	return CourseKey{Org: parts[0], Course: parts[1], Run: parts[2], Deprecated: deprecated}, nil
}

type UsageKey struct {
	CourseKey CourseKey
	BlockType string
	BlockID   string
}

func (k UsageKey) String() string {
	return usageKeyPrefix + k.CourseKey.Org + "+" + k.CourseKey.Course + "+" + k.CourseKey.Run +
		"+" + typeTag + k.BlockType + "+" + blockTag + k.BlockID
}

// ParseUsageKey parses block-v1:ORG+COURSE+RUN+type@TYPE+block@ID.
func ParseUsageKey(s string) (UsageKey, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), usageKeyPrefix)
	if !ok {
		return UsageKey{}, fmt.Errorf("%w: usage key %q", ErrInvalidKey, s)
	}

	parts := strings.Split(rest, "+")
	if len(parts) != 5 {
		return UsageKey{}, fmt.Errorf("%w: usage key %q", ErrInvalidKey, s)
	}

	blockType, okType := strings.CutPrefix(parts[3], typeTag)
	blockID, okBlock := strings.CutPrefix(parts[4], blockTag)
	if !okType || !okBlock {
		return UsageKey{}, fmt.Errorf("%w: usage key %q", ErrInvalidKey, s)
	}

	for _, p := range []string{parts[0], parts[1], parts[2], blockType, blockID} {
		if !allowedID.MatchString(p) {
			return UsageKey{}, fmt.Errorf("%w: usage key %q", ErrInvalidKey, s)
		}
	}

	return UsageKey{
		CourseKey: CourseKey{Org: parts[0], Course: parts[1], Run: parts[2]},
		BlockType: blockType,
		BlockID:   blockID,
	}, nil
}

func IsCourseKey(s string) bool {
	_, err := ParseCourseKey(s)
	return err == nil
}
