package certificate

import (
	"context"
	"errors"
	"time"
)

var ErrCertificateNotFound = errors.New("certificate not found")

// VerifiedCertificate is the public view of a certificate reached through its QR code.
type VerifiedCertificate struct {
	VerifyUUID  string    `json:"verifyUuid"`
	CourseID    string    `json:"courseId"`
	CourseName  string    `json:"courseName"`
	LearnerName string    `json:"learnerName"`
	Mode        string    `json:"mode"`
	IssuedAt    time.Time `json:"issuedAt"`
	QRCodeURL   string    `json:"qrCodeUrl"`
}

// VerifyCertificate looks up a certificate by verify uuid. Only downloadable
// certificates are public.
func (s *Service) VerifyCertificate(ctx context.Context, verifyUUID string) (*VerifiedCertificate, error) {
	cert, err := s.repo.Certificate.GetByVerifyUUID(ctx, nil, verifyUUID)
	if err != nil {
		return nil, err
	}
	if cert == nil || !cert.IsValid() {
		return nil, ErrCertificateNotFound
	}

	course, err := s.repo.CourseOverview.GetById(ctx, nil, cert.CourseID)
	if err != nil {
		return nil, err
	}

	verified := &VerifiedCertificate{
		VerifyUUID:  cert.VerifyUUID,
		CourseID:    course.ID,
		CourseName:  course.DisplayName,
		LearnerName: cert.User.FullName(),
		Mode:        cert.Mode.String(),
	}

	issuedAt, err := s.DisplayDateForCertificate(ctx, course, cert)
	if err != nil {
		return nil, err
	}
	verified.IssuedAt = issuedAt

	if cert.DownloadURL != "" && s.store != nil {
		url, err := s.store.PresignedURL(ctx, cert.DownloadURL, downloadURLExpiry)
		if err != nil {
			s.logger.Errorf("Failed to presign certificate artifact %s: %v", cert.DownloadURL, err)
		} else {
			verified.QRCodeURL = url
		}
	}

	return verified, nil
}
