package filestorage

import "testing"

func TestCertificateArtifactPath(t *testing.T) {
	tests := []struct {
		courseID string
		uuid     string
		want     string
	}{
		{"course-v1:edX+DemoX+Demo_Course", "abc", "certificates/course-v1_edX_DemoX_Demo_Course/abc.png"},
		{"edX/DemoX/2014", "def", "certificates/edX_DemoX_2014/def.png"},
	}

	for _, tt := range tests {
		t.Run(tt.courseID, func(t *testing.T) {
			if got := CertificateArtifactPath(tt.courseID, tt.uuid); got != tt.want {
				t.Errorf("CertificateArtifactPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
