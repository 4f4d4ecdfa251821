package certificate

import (
	"context"
	"fmt"
	"path"

	filestorage "github.com/SeakMengs/CourseCert/internal/file_storage"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/pkg/hashutil"
	"github.com/skip2/go-qrcode"
)

// newVerifyUUID returns the 32 character hex token printed in a certificate's verification url.
func (s *Service) newVerifyUUID() (string, error) {
	token, err := hashutil.ShortToken(s.cfg.SecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate verify uuid: %w", err)
	}
	return token, nil
}

// RenderQRCode encodes content as a PNG QR code of size x size pixels.
func RenderQRCode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// uploadArtifact stores the QR code pointing at the certificate's public
// verification page and returns its object key.
func (s *Service) uploadArtifact(ctx context.Context, cert *model.Certificate) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("no object store configured")
	}

	png, err := RenderQRCode(s.cfg.CertificateVerifyURL(cert.VerifyUUID), s.cfg.Certificate.QRCodeSize)
	if err != nil {
		return "", err
	}

	objectName := filestorage.CertificateArtifactPath(cert.CourseID, cert.VerifyUUID)
	size, err := s.store.Put(ctx, objectName, png, "image/png")
	if err != nil {
		return "", err
	}

	// Regeneration overwrites the same object, so the file row is only created once.
	if cert.ArtifactFileID == nil {
		file, err := s.repo.File.Create(ctx, nil, &model.File{
			FileName:       path.Base(objectName),
			UniqueFileName: objectName,
			BucketName:     s.store.Bucket(),
			Size:           size,
		})
		if err != nil {
			return "", fmt.Errorf("failed to record certificate artifact: %w", err)
		}
		cert.ArtifactFileID = &file.ID
	}

	return objectName, nil
}
