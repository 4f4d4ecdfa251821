package filestorage

import (
	"path"
	"strings"
)

var keyReplacer = strings.NewReplacer(":", "_", "+", "_", "/", "_")

// CertificateArtifactPath is the object key of a certificate's QR artifact.
// Example: certificates/course-v1_edX_DemoX_1/8c1f...e2.png
func CertificateArtifactPath(courseID, verifyUUID string) string {
	return path.Join("certificates", keyReplacer.Replace(courseID), verifyUUID+".png")
}
