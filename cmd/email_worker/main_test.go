package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard/pkg/mailer"
	mailtpl "github.com/oksasatya/jobboard/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func encode(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandleTemplateJob(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := &fakeSender{}
	job := mailer.EmailJob{
		To:       "ada@example.com",
		Template: "Welcome",
		Data:     mailtpl.NewWelcomeData(nil, "Ada", ""),
	}

	assert.Equal(t, ack, handle(context.Background(), s, logger, encode(t, job)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "ada@example.com", s.sent[0].to)
	assert.Equal(t, "Welcome to the job board", s.sent[0].subject)
	// Email is filled from To when the payload leaves it blank
	assert.Contains(t, s.sent[0].text, "ada@example.com")
}

func TestHandleTemplateFromType(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := &fakeSender{}
	job := mailer.EmailJob{To: "ada@example.com", Data: map[string]any{"Type": "welcome", "Name": "Ada"}}
	assert.Equal(t, ack, handle(context.Background(), s, logger, encode(t, job)))
	assert.Len(t, s.sent, 1)
}

func TestHandleRawJob(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := &fakeSender{}
	job := mailer.EmailJob{To: "ada@example.com", Subject: "Hi", Text: "plain"}
	assert.Equal(t, ack, handle(context.Background(), s, logger, encode(t, job)))
	assert.Equal(t, sent{"ada@example.com", "Hi", "plain", ""}, s.sent[0])
}

func TestHandleDropsBadJobs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := &fakeSender{}
	ctx := context.Background()

	assert.Equal(t, drop, handle(ctx, s, logger, []byte("{")))
	assert.Equal(t, drop, handle(ctx, s, logger, encode(t, mailer.EmailJob{Template: "welcome"})))
	assert.Equal(t, drop, handle(ctx, s, logger, encode(t, mailer.EmailJob{To: "a@b.c", Template: "login_otp"})))
	assert.Equal(t, drop, handle(ctx, s, logger, encode(t, mailer.EmailJob{To: "a@b.c", Subject: "no body"})))
	assert.Empty(t, s.sent)
	assert.Len(t, hook.AllEntries(), 4)
}

func TestHandleRetriesSendFailures(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := &fakeSender{err: errors.New("mailgun down")}
	job := mailer.EmailJob{To: "ada@example.com", Subject: "Hi", HTML: "<p>hi</p>"}
	assert.Equal(t, retry, handle(context.Background(), s, logger, encode(t, job)))
}
