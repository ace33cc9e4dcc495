package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard/config"
)

func TestRenderEveryTemplate(t *testing.T) {
	cfg := &config.Config{AppName: "JobBoard", AppURL: "https://jobs.test/", CompanyName: "Acme Inc"}
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		data        map[string]any
		wantSubject string
		wantText    []string
	}{
		{
			name:        Welcome,
			data:        NewWelcomeData(cfg, "Ada", "ada@example.com", WithTime(at)),
			wantSubject: "Welcome to JobBoard",
			wantText:    []string{"Hi Ada", "ada@example.com", "https://jobs.test/"},
		},
		{
			name: ApplicationReceived,
			data: NewApplicationReceivedData(cfg, "Poster", "poster@example.com",
				WithJob("Go dev", "Acme", "abc123"), WithApplicant("Ada", "ada@example.com"), WithTime(at)),
			wantSubject: "New applicant for Go dev",
			wantText:    []string{"Ada (ada@example.com)", "https://jobs.test/jobs/abc123", "01 May 2024, 09:30"},
		},
		{
			name: ApplicationUpdated,
			data: NewApplicationUpdatedData(cfg, "Ada", "ada@example.com",
				WithJob("Go dev", "Acme", "abc123"), WithApplicationStatus("accepted")),
			wantSubject: "Your application for Go dev was accepted",
			wantText:    []string{"ACCEPTED"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, text, html, err := Render(tt.name, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, subject)
			for _, s := range tt.wantText {
				assert.Contains(t, text, s)
			}
			assert.Contains(t, html, "<html>")
		})
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	data := NewWelcomeData(nil, "<b>Ada</b>", "ada@example.com")
	_, _, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;Ada&lt;/b&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("login_otp", nil)
	assert.Error(t, err)
}
