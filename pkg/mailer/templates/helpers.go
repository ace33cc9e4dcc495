package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/jobboard/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithJob(title, company, jobID string) Option {
	return func(d *EmailData) {
		d.JobTitle = title
		d.JobCompany = company
		if d.AppURL != "" && jobID != "" {
			d.JobURL = strings.TrimRight(d.AppURL, "/") + "/jobs/" + jobID
		}
	}
}

func WithApplicant(name, email string) Option {
	return func(d *EmailData) {
		d.ApplicantName = name
		d.ApplicantEmail = email
	}
}

func WithApplicationStatus(status string) Option {
	return func(d *EmailData) { d.ApplicationStatus = status }
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.AppName = cfg.AppName
		d.AppURL = cfg.AppURL
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

func NewApplicationReceivedData(cfg *config.Config, posterName, posterEmail string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, ApplicationReceived, posterName, posterEmail, opts...))
}

func NewApplicationUpdatedData(cfg *config.Config, applicantName, applicantEmail string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, ApplicationUpdated, applicantName, applicantEmail, opts...))
}
