package application

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

const MinPasswordLength = 6

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func tooLong(s string, max int) bool { return utf8.RuneCountInString(s) > max }

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (in RegisterInput) Validate() error {
	var v apperror.Violations
	if blank(in.Name) {
		v.Add("name", "is required")
	}
	if blank(in.Email) {
		v.Add("email", "is required")
	} else if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		v.Add("email", "must be a valid email")
	}
	if len(in.Password) < MinPasswordLength {
		v.Add("password", fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}
	return v.Err()
}

type BudgetInput struct {
	Min      *float64
	Max      *float64
	Currency string
}

type CreateJobInput struct {
	Title           string
	Description     string
	RequiredSkills  []string
	Budget          *BudgetInput
	JobType         string
	ExperienceLevel string
	Location        string
	Company         string
	Tags            []string
	Deadline        *time.Time
}

func (in CreateJobInput) Validate() error {
	var v apperror.Violations
	if blank(in.Title) {
		v.Add("title", "is required")
	}
	if blank(in.Description) {
		v.Add("description", "is required")
	}
	if blank(in.Company) {
		v.Add("company", "is required")
	}
	switch {
	case blank(in.JobType):
		v.Add("jobType", "is required")
	case !entity.JobType(in.JobType).Valid():
		v.Add("jobType", "must be one of: full-time, part-time, contract, freelance, internship")
	}
	switch {
	case blank(in.ExperienceLevel):
		v.Add("experienceLevel", "is required")
	case !entity.ExperienceLevel(in.ExperienceLevel).Valid():
		v.Add("experienceLevel", "must be one of: entry, junior, mid, senior, lead, executive")
	}

	b := in.Budget
	if b == nil || b.Min == nil {
		v.Add("budget.min", "is required")
	} else if *b.Min < 0 {
		v.Add("budget.min", "must be at least 0")
	}
	if b == nil || b.Max == nil {
		v.Add("budget.max", "is required")
	}
	if b != nil && b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		v.Add("budget.max", "must be greater than or equal to budget.min")
	}
	return v.Err()
}

// Sanitized returns a copy with markup stripped from every free-text field.
// Validate the sanitized copy so markup-only values count as blank.
func (in CreateJobInput) Sanitized() CreateJobInput {
	in.Title = helpers.PlainText(in.Title)
	in.Description = helpers.PlainText(in.Description)
	in.Company = helpers.PlainText(in.Company)
	in.Location = helpers.PlainText(in.Location)
	in.RequiredSkills = helpers.PlainTextList(in.RequiredSkills)
	in.Tags = helpers.PlainTextList(in.Tags)
	return in
}

// JobPosting builds the document with defaults applied. in must already be
// Sanitized and valid.
func (in CreateJobInput) JobPosting(poster *entity.User) *entity.JobPosting {
	currency := strings.ToUpper(strings.TrimSpace(in.Budget.Currency))
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	location := in.Location
	if location == "" {
		location = entity.DefaultJobLocation
	}
	return &entity.JobPosting{
		Title:           in.Title,
		Description:     in.Description,
		RequiredSkills:  entity.CleanList(in.RequiredSkills),
		Budget:          entity.Budget{Min: *in.Budget.Min, Max: *in.Budget.Max, Currency: currency},
		JobType:         entity.JobType(in.JobType),
		ExperienceLevel: entity.ExperienceLevel(in.ExperienceLevel),
		Location:        location,
		Company:         in.Company,
		Tags:            entity.CleanList(in.Tags),
		Status:          entity.JobActive,
		Deadline:        in.Deadline,
		PostedByID:      poster.ID,
		Applicants:      []entity.Application{},
	}
}

type CreatePostInput struct {
	Content  string
	PostType string
	Tags     []string
	Image    string
}

func (in CreatePostInput) Validate() error {
	var v apperror.Violations
	if blank(in.Content) {
		v.Add("content", "is required")
	} else if tooLong(strings.TrimSpace(in.Content), entity.MaxPostLength) {
		v.Add("content", fmt.Sprintf("must be at most %d characters long", entity.MaxPostLength))
	}
	if in.PostType != "" && !entity.PostType(in.PostType).Valid() {
		v.Add("postType", "must be one of: update, achievement, article, question, celebration")
	}
	return v.Err()
}

func (in CreatePostInput) SocialPost(author *entity.User) *entity.SocialPost {
	pt := entity.PostType(in.PostType)
	if pt == "" {
		pt = entity.PostUpdate
	}
	return &entity.SocialPost{
		Content:  helpers.PlainText(in.Content),
		AuthorID: author.ID,
		PostType: pt,
		Tags:     entity.CleanList(helpers.PlainTextList(in.Tags)),
		Image:    strings.TrimSpace(in.Image),
		Likes:    []entity.Like{},
		Comments: []entity.Comment{},
	}
}

// ValidateComment checks comment content before it is appended.
func ValidateComment(content string) error {
	if blank(content) {
		return apperror.NewValidation("Comment content is required", apperror.Violation{Field: "content", Message: "is required"})
	}
	var v apperror.Violations
	if tooLong(strings.TrimSpace(content), entity.MaxCommentLength) {
		v.Add("content", fmt.Sprintf("must be at most %d characters long", entity.MaxCommentLength))
	}
	return v.Err()
}

// UpdateProfileInput mirrors entity.ProfileUpdate; nil fields are left unchanged.
type UpdateProfileInput struct {
	Name          *string
	Bio           *string
	LinkedinURL   *string
	Skills        []string
	WalletAddress *string
	Location      *string
	Experience    *string
}

func (in UpdateProfileInput) Validate() error {
	var v apperror.Violations
	if in.Name != nil && blank(*in.Name) {
		v.Add("name", "must not be empty")
	}
	if in.Bio != nil && tooLong(strings.TrimSpace(*in.Bio), entity.MaxBioLength) {
		v.Add("bio", fmt.Sprintf("must be at most %d characters long", entity.MaxBioLength))
	}
	if in.LinkedinURL != nil && !blank(*in.LinkedinURL) && !looksLikeURL(*in.LinkedinURL) {
		v.Add("linkedinUrl", "must be a valid URL")
	}
	if in.Experience != nil && !entity.ExperienceLevel(*in.Experience).Valid() {
		v.Add("experience", "must be one of: entry, junior, mid, senior, lead, executive")
	}
	if in.WalletAddress != nil && tooLong(*in.WalletAddress, 128) {
		v.Add("walletAddress", "must be at most 128 characters long")
	}
	return v.Err()
}

func looksLikeURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (in UpdateProfileInput) ProfileUpdate() entity.ProfileUpdate {
	var upd entity.ProfileUpdate
	upd.Name = trimmedPlain(in.Name)
	upd.Bio = trimmedPlain(in.Bio)
	upd.LinkedinURL = trimmed(in.LinkedinURL)
	upd.Location = trimmedPlain(in.Location)
	upd.WalletAddress = trimmed(in.WalletAddress)
	if in.Skills != nil {
		upd.Skills = entity.CleanList(helpers.PlainTextList(in.Skills))
	}
	if in.Experience != nil {
		e := entity.ExperienceLevel(*in.Experience)
		upd.Experience = &e
	}
	return upd
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func trimmedPlain(p *string) *string {
	if p == nil {
		return nil
	}
	s := helpers.PlainText(*p)
	return &s
}
