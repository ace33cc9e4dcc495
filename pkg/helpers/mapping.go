package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/jobboard/pkg/mailer"
)

// EnsureRecipientAndEmail fills Email and RecipientEmail in job.Data from job.To when missing.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// NormalizeTemplate lower-cases the template name and falls back to Data["Type"].
func NormalizeTemplate(job *mailer.EmailJob) {
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
	if job.Template == "" && job.Data != nil {
		if t, ok := job.Data["Type"].(string); ok {
			job.Template = strings.ToLower(strings.TrimSpace(t))
		}
	}
}
