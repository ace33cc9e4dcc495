package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/config"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/pkg/helpers"
	"github.com/oksasatya/jobboard/pkg/mailer"
	mailtpl "github.com/oksasatya/jobboard/pkg/mailer/templates"
)

// Publisher queues an email job for the worker.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

var _ Publisher = (*helpers.RabbitPublisher)(nil)

// Notifier turns domain events into queued emails. Failures are logged and
// never fail the request that triggered them.
type Notifier struct {
	Pub    Publisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(pub Publisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Cfg: cfg, Logger: logger}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.Pub != nil && (n.Cfg == nil || n.Cfg.MailSendEnabled)
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	if !n.enabled() || job.To == "" {
		return
	}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Warn("publish email job failed")
	}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if !n.enabled() {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.Cfg, u.Name, u.Email, mailtpl.WithTime(u.CreatedAt)),
	})
}

func (n *Notifier) ApplicationReceived(ctx context.Context, job *entity.JobPosting, poster, applicant *entity.User, at time.Time) {
	if !n.enabled() || poster == nil {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       poster.Email,
		Template: mailtpl.ApplicationReceived,
		Data: mailtpl.NewApplicationReceivedData(n.Cfg, poster.Name, poster.Email,
			mailtpl.WithJob(job.Title, job.Company, job.ID.Hex()),
			mailtpl.WithApplicant(applicant.Name, applicant.Email),
			mailtpl.WithTime(at),
		),
	})
}

func (n *Notifier) ApplicationUpdated(ctx context.Context, job *entity.JobPosting, applicant *entity.User, status entity.ApplicationStatus, at time.Time) {
	if !n.enabled() || applicant == nil {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       applicant.Email,
		Template: mailtpl.ApplicationUpdated,
		Data: mailtpl.NewApplicationUpdatedData(n.Cfg, applicant.Name, applicant.Email,
			mailtpl.WithJob(job.Title, job.Company, job.ID.Hex()),
			mailtpl.WithApplicationStatus(string(status)),
			mailtpl.WithTime(at),
		),
	})
}
