package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SeakMengs/CourseCert/internal/mailer"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	status int
	err    error
	sent   []string
}

func (m *fakeMailer) Send(templateFile mailer.MailTemplateFile, toEmail string, data any) (int, error) {
	m.sent = append(m.sent, toEmail)
	return m.status, m.err
}

func TestMailJobHandler(t *testing.T) {
	job, err := queue.NewCertificateAvailableMailJob("learner@example.com", mailer.CertificateAvailableData{CourseName: "Demo"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		mailer      *fakeMailer
		job         queue.MailJobPayload
		wantRequeue bool
		wantErr     bool
	}{
		{"sent", &fakeMailer{status: http.StatusAccepted}, job, false, false},
		{"provider error", &fakeMailer{err: errors.New("timeout")}, job, true, true},
		{"rejected", &fakeMailer{status: http.StatusBadRequest}, job, true, true},
		{"unknown template", &fakeMailer{status: http.StatusOK}, queue.MailJobPayload{TemplateFile: "templates/unknown.tmpl"}, false, true},
		{"bad payload", &fakeMailer{status: http.StatusOK}, queue.MailJobPayload{TemplateFile: mailer.TemplateCertificateAvailable, Data: []byte(`"x"`)}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requeue, err := mailJobHandler(tt.mailer)(context.Background(), tt.job)
			assert.Equal(t, tt.wantRequeue, requeue)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"learner@example.com"}, tt.mailer.sent)
		})
	}
}
